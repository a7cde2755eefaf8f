package i18n

import "testing"

func TestTranslateKnownKeys(t *testing.T) {
	tr, err := New(LangEN)
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	if got := tr.Translate("home.heroTitle"); got != "Future of Farming" {
		t.Fatalf("unexpected hero title: %q", got)
	}
	tr.SetLanguage(LangAZ)
	if got := tr.Translate("analyze.analyzing"); got != "Təhlil edilir..." {
		t.Fatalf("unexpected az analyzing label: %q", got)
	}
}

func TestTranslateMissingKeyReturnsKey(t *testing.T) {
	tr, err := New(LangEN)
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	for _, lang := range []string{LangEN, LangAZ} {
		tr.SetLanguage(lang)
		for _, key := range []string{"nope", "home.nope", "home.heroTitle.deeper", "nope.deeper"} {
			if got := tr.Translate(key); got != key {
				t.Fatalf("lang %s key %q: expected key back, got %q", lang, key, got)
			}
		}
	}
}

func TestSetLanguageIgnoresUnknown(t *testing.T) {
	tr, err := New("de")
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	if tr.Language() != DefaultLanguage {
		t.Fatalf("expected fallback to default, got %s", tr.Language())
	}
	tr.SetLanguage("az")
	tr.SetLanguage("fr")
	if tr.Language() != LangAZ {
		t.Fatalf("unknown language must not change selection, got %s", tr.Language())
	}
}

func TestSplitEmphasis(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		policy     SplitPolicy
		plain      string
		emphasized string
	}{
		{"hero two words", "Future Farming", HeroSplit, "Future", "Farming"},
		{"hero three words", "Future of Farming", HeroSplit, "Future", "of Farming"},
		{"hero single word stays plain", "Farming", HeroSplit, "Farming", ""},
		{"title single word fully emphasized", "Panel", TitleSplit, "", "Panel"},
		{"title two words", "Powerful Features", TitleSplit, "Powerful", "Features"},
		{"contact three words", "Get In Touch", ContactTitleSplit, "Get In", "Touch"},
		{"contact two words falls back", "In Touch", ContactTitleSplit, "In", "Touch"},
		{"contact single word", "Touch", ContactTitleSplit, "", "Touch"},
		{"empty text", "", HeroSplit, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plain, emphasized := SplitEmphasis(tc.text, tc.policy)
			if plain != tc.plain || emphasized != tc.emphasized {
				t.Fatalf("got (%q, %q), want (%q, %q)", plain, emphasized, tc.plain, tc.emphasized)
			}
		})
	}
}
