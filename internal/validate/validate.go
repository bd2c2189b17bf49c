// Package validate checks mdcore.Options for internally-consistent values
// before a parse/render/session call proceeds, using the same validator
// tags style as jinterlante1206-AleutianLocal's request-struct validation.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var instance = validator.New(validator.WithRequiredStructEnabled())

// Options mirrors the subset of mdcore.Options worth validating; mdcore
// builds one of these from the public Options before calling Struct.
type Options struct {
	MaxNestingDepth  int    `validate:"gte=0,lte=1000"`
	MaxInputBytes    int64  `validate:"gte=0"`
	HeadingSlugStyle string `validate:"omitempty,oneof=github simple none"`
	ProviderImportSource string `validate:"omitempty"`
}

// Struct validates opts and returns a single wrapped error describing every
// failing field, or nil.
func Struct(opts Options) error {
	if err := instance.Struct(opts); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("invalid options: %s", verrs.Error())
		}
		return err
	}
	return nil
}
