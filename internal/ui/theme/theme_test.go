package theme

import "testing"

func TestToggle(t *testing.T) {
	t.Cleanup(func() { Apply(Dark) })
	Apply(Dark)

	if got := Toggle(); got.Name != "light" {
		t.Fatalf("Toggle from dark = %q, want light", got.Name)
	}
	if Text != Light.Text {
		t.Error("colors not switched to light palette")
	}
	if got := Toggle(); got.Name != "dark" {
		t.Fatalf("Toggle from light = %q, want dark", got.Name)
	}
	if Current().Name != "dark" {
		t.Errorf("Current = %q", Current().Name)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"dark", "light"} {
		p, ok := ByName(name)
		if !ok || p.Name != name {
			t.Errorf("ByName(%q) = %q, %v", name, p.Name, ok)
		}
	}
	if _, ok := ByName("neon"); ok {
		t.Error("unknown palette should not resolve")
	}
}
