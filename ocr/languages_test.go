package ocr

import "testing"

func TestLanguageCatalog(t *testing.T) {
	langs := Languages()
	if len(langs) < 100 {
		t.Fatalf("catalog has %d entries, want at least 100", len(langs))
	}
	if langs[0].Code != DefaultLanguage {
		t.Fatalf("first catalog entry = %s, want the default language", langs[0].Code)
	}

	seen := make(map[Language]bool, len(langs))
	for _, info := range langs {
		if info.Code == "" || info.Name == "" {
			t.Fatalf("catalog entry with empty field: %+v", info)
		}
		if seen[info.Code] {
			t.Fatalf("duplicate catalog entry: %s", info.Code)
		}
		seen[info.Code] = true
	}
}

func TestLanguageValid(t *testing.T) {
	for _, l := range []Language{"eng", "deu", "chi_sim", "srp_latn"} {
		if !l.Valid() {
			t.Fatalf("%s not recognized as catalog member", l)
		}
	}
	for _, l := range []Language{"", "klingon", "en", "ENG"} {
		if l.Valid() {
			t.Fatalf("%q wrongly recognized as catalog member", l)
		}
	}
}

func TestLanguageDisplayName(t *testing.T) {
	if got := Language("deu").DisplayName(); got != "German" {
		t.Fatalf("DisplayName(deu) = %q", got)
	}
	if got := Language("xx").DisplayName(); got != "xx" {
		t.Fatalf("DisplayName(xx) = %q, want the code itself", got)
	}
}

func TestLanguageOr(t *testing.T) {
	if got := Language("fra").Or(DefaultLanguage); got != "fra" {
		t.Fatalf("valid language replaced: %s", got)
	}
	if got := Language("").Or("deu"); got != "deu" {
		t.Fatalf("empty language fallback = %s, want deu", got)
	}
	if got := Language("nope").Or("also-nope"); got != DefaultLanguage {
		t.Fatalf("double-invalid fallback = %s, want default", got)
	}
}
