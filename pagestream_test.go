package pagestream

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/pagestream/contentstream"
)

// TestParse tests the parse facade
func TestParse(t *testing.T) {
	ops, err := Parse([]byte("q\n2.5 w\nQ\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []contentstream.Operation{
		contentstream.OpSave{},
		contentstream.OpLineWidth{Width: 2.5},
		contentstream.OpRestore{},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

// TestSerializeStability tests that parse then serialize reproduces
// normal-form bytes unchanged
func TestSerializeStability(t *testing.T) {
	input := []byte("q\n0.5 G\n10 10 m\n100 100 l\nS\nQ\n")

	ops, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if out := Serialize(ops); !bytes.Equal(out, input) {
		t.Errorf("serialized form differs:\ngot  %q\nwant %q", out, input)
	}
}

// TestMust tests the panic helper in both directions
func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for failed parse")
		}
	}()
	Must(Parse([]byte("1 frob\n")))
}
