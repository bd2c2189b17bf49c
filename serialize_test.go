package mdcore

import "testing"

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.GFM = true
	res, err := Parse([]byte("# Hi\n\n- [x] done\n- [ ] todo\n\n~~gone~~\n"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := SerializeTree(res.Tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := DeserializeTree(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data2, err := SerializeTree(back)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != string(data2) {
		t.Errorf("round trip not semantically stable:\n%s\nvs\n%s", data, data2)
	}
}
