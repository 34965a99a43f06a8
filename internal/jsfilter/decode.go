package jsfilter

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Unescape decodes the escapes of a JavaScript string body. Unknown escapes
// are kept verbatim and their characters returned; decoding never fails.
func Unescape(s string) (string, []rune) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))
	var unknown []rune

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '\\' {
			sb.WriteRune(ch)
			continue
		}
		if i+1 >= len(runes) {
			// trailing backslash
			sb.WriteRune('\\')
			unknown = append(unknown, '\\')
			break
		}
		i++
		ch = runes[i]
		switch ch {
		case 'b':
			sb.WriteRune('\b')
		case 'f':
			sb.WriteRune('\f')
		case 'n':
			sb.WriteRune('\n')
		case 'r':
			sb.WriteRune('\r')
		case 't':
			sb.WriteRune('\t')
		case '\\', '"', '/':
			sb.WriteRune(ch)
		default:
			sb.WriteRune('\\')
			sb.WriteRune(ch)
			unknown = append(unknown, ch)
		}
	}
	return sb.String(), unknown
}

// Decode is Unescape with a warning logged per unknown escape.
func Decode(s string) string {
	out, unknown := Unescape(s)
	for _, ch := range unknown {
		log.Warn().Str("escape", `\`+string(ch)).Msg("Unexpected JavaScript escape sequence")
	}
	return out
}
