package validate

import "testing"

func TestStructAcceptsDefaults(t *testing.T) {
	if err := Struct(Options{}); err != nil {
		t.Errorf("unexpected error for zero-value options: %v", err)
	}
}

func TestStructRejectsUnknownSlugStyle(t *testing.T) {
	err := Struct(Options{HeadingSlugStyle: "fancy"})
	if err == nil {
		t.Error("expected an error for an unrecognized heading slug style")
	}
}

func TestStructRejectsNegativeNestingDepth(t *testing.T) {
	err := Struct(Options{MaxNestingDepth: -1})
	if err == nil {
		t.Error("expected an error for a negative nesting depth")
	}
}
