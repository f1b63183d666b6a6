package match

import (
	"strings"
	"unicode"
)

// accessorPrefixes are stripped by NormalizeIdentWithPrefixStrip, longest first.
var accessorPrefixes = []string{"get", "set", "has", "is"}

// NormalizeIdent lowercases an identifier and drops separators, so that
// "OrderID", "order_id" and "orderId" normalize alike.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// NormalizeIdentWithPrefixStrip normalizes s and removes a leading accessor
// verb ("GetName" -> "name") when something is left after it.
func NormalizeIdentWithPrefixStrip(s string) string {
	tokens := TokenizeIdent(s)
	if len(tokens) > 1 {
		for _, p := range accessorPrefixes {
			if tokens[0] == p {
				tokens = tokens[1:]
				break
			}
		}
	}

	return strings.Join(tokens, "")
}

// TokenizeIdent splits an identifier into lowercase words:
//   - "OrderID" -> ["order", "id"]
//   - "getHTTPResponse" -> ["get", "http", "response"]
//   - "total_cents" -> ["total", "cents"]
func TokenizeIdent(s string) []string {
	var (
		tokens []string
		word   []rune
	)

	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, strings.ToLower(string(word)))
			word = word[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		word = append(word, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsWord reports whether runes[i] begins a new camel-case word: a lower
// to upper transition, or the last capital of an acronym followed by lower case.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
