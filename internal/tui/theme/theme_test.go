package theme

import "testing"

func TestLoad(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", name, err)
			}
			if th.Name != name {
				t.Errorf("name = %q, want %q", th.Name, name)
			}
			if th.Bg == "" || th.Fg == "" || th.Event == "" || th.Owned == "" || th.Created == "" {
				t.Errorf("theme %q has empty required colors: %+v", name, th)
			}
		})
	}
}

func TestLoad_FallsBackToMocha(t *testing.T) {
	th, err := Load("no-such-theme")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("expected fallback to mocha, got %q", th.Name)
	}
}

func TestLoad_EmptyName(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("expected mocha for empty name, got %q", th.Name)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable("Frappe") {
		t.Error("expected frappe to be available (case insensitive)")
	}
	if IsAvailable("dracula") {
		t.Error("expected dracula to be unavailable")
	}
}
