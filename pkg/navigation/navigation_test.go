package navigation

import "testing"

func TestActive(t *testing.T) {
	items := append(Primary(), Item{Key: "page:om-oss", Label: "Om oss", Path: "/om-oss"})

	cases := map[string]string{
		"/":                   "home",
		"/artists":            "artists",
		"/artists/kari":       "artists",
		"/artistsandmore":     "",
		"/venues/rockefeller": "venues",
		"/om-oss":             "page:om-oss",
		"/kontakt":            "",
	}

	for path, expected := range cases {
		if got := Active(items, path); got != expected {
			t.Fatalf("Active(%q) = %q, want %q", path, got, expected)
		}
	}
}
