// Package i18n provides translation lookup for the supported languages.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Languages supported by the client.
const (
	LangEN = "en"
	LangAZ = "az"
)

// DefaultLanguage is used when no preference is stored.
const DefaultLanguage = LangEN

// Translator resolves dot-separated keys against the table for one language.
type Translator struct {
	lang   string
	tables map[string]map[string]any
}

// New loads the embedded locale tables and selects the given language.
// Unknown languages fall back to the default.
func New(lang string) (*Translator, error) {
	tables := map[string]map[string]any{}
	for _, code := range []string{LangEN, LangAZ} {
		raw, err := localeFS.ReadFile("locales/" + code + ".toml")
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", code, err)
		}
		var table map[string]any
		if err := toml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("failed to decode locale %s: %w", code, err)
		}
		tables[code] = table
	}
	t := &Translator{lang: DefaultLanguage, tables: tables}
	t.SetLanguage(lang)
	return t, nil
}

// Language returns the active language code.
func (t *Translator) Language() string {
	return t.lang
}

// SetLanguage switches the active language. Unknown codes are ignored.
func (t *Translator) SetLanguage(lang string) {
	if _, ok := t.tables[lang]; ok {
		t.lang = lang
	}
}

// Translate resolves a dot-separated path. A key missing at any segment
// returns the path itself.
func (t *Translator) Translate(key string) string {
	value := any(t.tables[t.lang])
	for _, segment := range strings.Split(key, ".") {
		table, ok := value.(map[string]any)
		if !ok {
			return key
		}
		value, ok = table[segment]
		if !ok {
			return key
		}
	}
	text, ok := value.(string)
	if !ok {
		return key
	}
	return text
}
