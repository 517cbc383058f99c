package status

import "testing"

func TestLabelsAndVariants(t *testing.T) {
	for _, s := range All {
		if !Valid(s) {
			t.Errorf("status %s should be valid", s)
		}
		if Label(s) == "Desconocido" {
			t.Errorf("status %s missing label", s)
		}
	}

	if Valid("converted") {
		t.Errorf("unknown status should not be valid")
	}
	if got := Label("converted"); got != "Desconocido" {
		t.Errorf("expected fallback label, got %q", got)
	}
	if got := Variant("converted"); got != "gray" {
		t.Errorf("expected fallback variant, got %q", got)
	}
	if got := Variant(Accepted); got != "green" {
		t.Errorf("expected green for accepted, got %q", got)
	}
}
