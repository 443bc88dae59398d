package codec

import (
	"fmt"
	"strings"

	"qr-engine/internal/common/errors"
)

// normalizeVNMobile accepts a Vietnamese mobile number in local (0xxxxxxxxx)
// or international (+84xxxxxxxxx, 84xxxxxxxxx) form and returns the local form.
func (e *Engine) normalizeVNMobile(key, v string) (string, error) {
	s := stripSeparators(v)
	switch {
	case strings.HasPrefix(s, "+84"):
		s = "0" + s[3:]
	case strings.HasPrefix(s, "84") && len(s) == 11:
		s = "0" + s[2:]
	}
	if !isDigits(s) {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s must contain only digits", key))
	}
	if len(s) != 10 {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s must be a 10 digit Vietnamese mobile number", key))
	}
	if !e.tables.IsMobilePrefix(s[:2]) {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s prefix %s is not a Vietnamese mobile prefix", key, s[:2]))
	}
	return s, nil
}

// internationalVN turns a validated local number into the 84-prefixed form.
func internationalVN(local string) string {
	return "84" + local[1:]
}
