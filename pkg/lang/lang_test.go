package lang

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"nb":     "nb",
		" nb-no": "nb-NO",
		"EN-gb":  "en-GB",
		"nn":     "nn",
	}

	for input, expected := range cases {
		got, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, expected)
		}
	}

	for _, invalid := range []string{"", "   ", "not a tag"} {
		if _, err := Normalize(invalid); err == nil {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault("??"); got != Default {
		t.Fatalf("expected fallback to %q, got %q", Default, got)
	}
	if got := OrDefault("sv-se"); got != "sv-SE" {
		t.Fatalf("expected sv-SE, got %q", got)
	}
}
