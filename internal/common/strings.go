package common

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is what String methods return for out-of-range enum values.
const UnknownStr = "unknown"

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// JoinTypes joins canonical type names with ", ".
func JoinTypes(names []string) string {
	return strings.Join(names, ", ")
}

// qualified matches the import path part of a qualified type name.
var qualified = regexp.MustCompile(`[\w.\-]+(/[\w.\-]+)*/([\w]+\.)`)

// ShortTypeName shortens every import path in a canonical type name to its
// last element: "map[string]*example.com/shop/store.User" becomes
// "map[string]*store.User".
func ShortTypeName(name string) string {
	return qualified.ReplaceAllString(name, "$2")
}
