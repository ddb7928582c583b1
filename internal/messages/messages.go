// Package messages holds the bundled, localized default texts shown to
// rejected connections when no custom message applies.
package messages

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"strings"
)

const (
	KeyReserved = "reservedslots.reserved"

	fallbackLocale = "en"
)

//go:embed messages.yml
var bundled []byte

// Bundle is a locale -> key -> text table.
type Bundle map[string]map[string]string

// Default returns the embedded bundle.
func Default() Bundle {
	b, err := Parse(bundled)
	if err != nil {
		panic(fmt.Sprintf("embedded messages bundle is broken: %v", err))
	}
	return b
}

func Parse(data []byte) (Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal messages bundle: %w", err)
	}
	return b, nil
}

// Text looks key up in locale, then in the locale's language ("pt" for
// "pt_BR"), then in English. An unknown key returns the key itself.
func (b Bundle) Text(locale, key string) string {
	for _, l := range candidates(locale) {
		if text, ok := b[l][key]; ok && text != "" {
			return text
		}
	}
	return key
}

func candidates(locale string) []string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "-", "_")
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if lang, _, found := strings.Cut(locale, "_"); found {
			out = append(out, lang)
		}
	}
	return append(out, fallbackLocale)
}
