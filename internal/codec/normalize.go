package codec

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field normalizers. Every function here is idempotent: applying it to its
// own output returns the output unchanged.

var separatorStripper = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "\t", "")

// stripSeparators removes the punctuation people type inside phone and
// account numbers.
func stripSeparators(s string) string {
	return separatorStripper.Replace(s)
}

// keepDigits drops every rune that is not an ASCII digit.
func keepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// stripWhitespace removes every Unicode space.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// collapseSpaces trims s and folds every whitespace run into one ASCII space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// upperCode canonicalizes short reference codes such as bank and currency codes.
func upperCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// foldIdentifier canonicalizes case-insensitive platform identifiers.
func foldIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var vietnameseD = strings.NewReplacer("đ", "d", "Đ", "D")

// stripDiacritics removes combining marks so "Nguyễn Văn Á" becomes
// "Nguyen Van A". The transformer chain is stateful, so one is built per call.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, vietnameseD.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// bankAccountName produces the form banks print on transfer slips:
// no diacritics, upper case, single spaces.
func bankAccountName(s string) string {
	return collapseSpaces(strings.ToUpper(stripDiacritics(s)))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
