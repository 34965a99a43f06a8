// Package translation supplies targets for text units at reconstruction
// time.
package translation

import (
	"strings"

	"github.com/rs/zerolog/log"

	"js-translator/internal/event"
	"js-translator/internal/interpolation"
	"js-translator/internal/skeleton"
)

// FromMap looks translations up by the plain source text of each unit.
// Translations that drop a placeholder of the source are still used but
// logged.
func FromMap(translations map[string]string) skeleton.TargetFunc {
	return func(u *event.TextUnit) (string, bool) {
		plain := u.Source.Plain()
		t, ok := translations[plain]
		if !ok {
			return "", false
		}
		if missing := interpolation.Missing(plain, t); len(missing) > 0 {
			log.Warn().Str("id", u.ID).Strs("placeholders", missing).Msg("Translation drops placeholders")
		}
		return u.Source.Recode(t), true
	}
}

// accents maps ASCII letters to accented look-alikes.
var accents = strings.NewReplacer(
	"a", "á", "e", "é", "i", "í", "o", "ó", "u", "ú", "y", "ý", "c", "ç", "n", "ñ",
	"A", "Á", "E", "É", "I", "Í", "O", "Ó", "U", "Ú", "Y", "Ý", "C", "Ç", "N", "Ñ",
)

// PseudoText accents the letters of text and brackets it, leaving
// placeholders untouched.
func PseudoText(text string) string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, p := range interpolation.Split(text) {
		if p.Var {
			sb.WriteString(p.Text)
			continue
		}
		sb.WriteString(accents.Replace(p.Text))
	}
	sb.WriteString("]")
	return sb.String()
}

// Pseudo pseudo-translates every unit. Inline codes keep their position;
// source codes occur once each, in index order.
func Pseudo() skeleton.TargetFunc {
	return func(u *event.TextUnit) (string, bool) {
		var sb strings.Builder
		sb.WriteString("[")
		next := 0
		u.Source.Segments(func(text string, code *event.Code) {
			if code != nil {
				sb.WriteString(event.Marker(next))
				next++
				return
			}
			p := PseudoText(text)
			sb.WriteString(p[1 : len(p)-1])
		})
		sb.WriteString("]")
		return sb.String(), true
	}
}
