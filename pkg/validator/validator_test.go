package validator

import (
	"os"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	Init()
	os.Exit(m.Run())
}

func TestSanitizeHTMLKeepsSafeMarkup(t *testing.T) {
	in := `<p>hello <b>world</b></p><script>alert("x")</script>`
	out := SanitizeHTML(in)

	if strings.Contains(out, "script") {
		t.Fatalf("expected script removed, got %q", out)
	}
	if !strings.Contains(out, "<b>world</b>") {
		t.Fatalf("expected safe markup kept, got %q", out)
	}
}

func TestSanitizeStringStripsEverything(t *testing.T) {
	if got := SanitizeString(`<a href="http://x">link</a> text`); got != "link text" {
		t.Fatalf("expected bare text, got %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"reader@example.com", "a.b+c@sub.domain.org"}
	invalid := []string{"", "plain", "missing@tld", "@example.com"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestCustomValidations(t *testing.T) {
	type form struct {
		Username string `binding:"username"`
		Title    string `binding:"no_html"`
	}

	if err := Validate(form{Username: "syntomic_1", Title: "plain title"}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
	if err := Validate(form{Username: "x", Title: "ok"}); err == nil {
		t.Fatal("expected short username rejected")
	}
	if err := Validate(form{Username: "has space", Title: "ok"}); err == nil {
		t.Fatal("expected username with space rejected")
	}
	if err := Validate(form{Username: "valid_name", Title: "<b>nope</b>"}); err == nil {
		t.Fatal("expected html in title rejected")
	}
}
