package i18n

import "testing"

func TestTranslate(t *testing.T) {
	if got := T("en", "flash_welcome"); got != "Welcome!" {
		t.Fatalf("T(en) = %q", got)
	}
	if got := T("ar", "flash_welcome"); got != "مرحباً بك!" {
		t.Fatalf("T(ar) = %q", got)
	}
}

func TestTranslateFallsBackToArabicThenCode(t *testing.T) {
	if got := T("fr", "flash_welcome"); got != "مرحباً بك!" {
		t.Fatalf("unknown lang should fall back to Arabic, got %q", got)
	}
	if got := T("en", "no_such_key"); got != "no_such_key" {
		t.Fatalf("missing key should return the code, got %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		header, want string
	}{
		{"", "ar"},
		{"ar", "ar"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR,fr;q=0.9", "ar"},
		{"fr-FR, en;q=0.8", "en"},
	}
	for _, c := range cases {
		if got := DetectLanguage(c.header); got != c.want {
			t.Fatalf("DetectLanguage(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported("ar") || !Supported("en") {
		t.Fatal("ar and en must be supported")
	}
	if Supported("fr") || Supported("") {
		t.Fatal("unsupported languages reported as supported")
	}
}
