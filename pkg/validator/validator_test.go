package validator

import (
	"strings"
	"testing"
)

type slugPayload struct {
	Slug    string `validate:"omitempty,slug"`
	Title   string `validate:"required,no_html"`
	Website string `validate:"http_url"`
}

func TestValidateSlugTag(t *testing.T) {
	cases := []struct {
		slug  string
		valid bool
	}{
		{"", true},
		{"the-band", true},
		{"The-Band", false},
		{"the_band", false},
		{"the--band", false},
	}

	for _, tc := range cases {
		err := Validate(slugPayload{Slug: tc.slug, Title: "The Band"})
		if tc.valid && err != nil {
			t.Errorf("expected slug %q to be valid, got %v", tc.slug, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("expected slug %q to be rejected", tc.slug)
		}
	}
}

func TestValidateNoHTMLTag(t *testing.T) {
	if err := Validate(slugPayload{Title: "<b>Band</b>"}); err == nil {
		t.Fatalf("expected markup in title to be rejected")
	}
}

func TestValidateHTTPURLTag(t *testing.T) {
	if err := Validate(slugPayload{Title: "Band", Website: "ftp://example.com"}); err == nil {
		t.Fatalf("expected non-http url to be rejected")
	}
	if err := Validate(slugPayload{Title: "Band", Website: "https://example.com/band"}); err != nil {
		t.Fatalf("expected https url to be accepted, got %v", err)
	}
}

func TestSanitizeHTMLDropsScripts(t *testing.T) {
	out := SanitizeHTML(`<p>Live tonight</p><script>alert(1)</script>`)
	if strings.Contains(out, "script") {
		t.Fatalf("expected script to be removed, got %q", out)
	}
	if !strings.Contains(out, "<p>Live tonight</p>") {
		t.Fatalf("expected paragraph to survive, got %q", out)
	}
}

func TestSanitizeStringRemovesMarkup(t *testing.T) {
	if out := SanitizeString(" <em>Oslo</em> "); out != "Oslo" {
		t.Fatalf("expected plain text, got %q", out)
	}
}

func TestNormalizeSpaces(t *testing.T) {
	if out := NormalizeSpaces("  Rock \n\t and  Roll "); out != "Rock and Roll" {
		t.Fatalf("unexpected result %q", out)
	}
}
