package strcase

import (
	"strings"
	"unicode"
)

// Words splits s at separators (underscore, hyphen, dot, space) and at case
// changes. An initialism stays one word: "HTTPServer" is HTTP, Server.
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush()
			continue
		}

		if i > 0 && len(cur) > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			endsInitialism := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || endsInitialism {
				flush()
			}
		}

		cur = append(cur, r)
	}
	flush()

	return words
}

// ToLowerSnake converts s to lower snake_case, e.g. "SenderID" to "sender_id"
// and "X-Sender-Id" to "x_sender_id".
func ToLowerSnake(s string) string {
	return strings.ToLower(strings.Join(Words(s), "_"))
}
