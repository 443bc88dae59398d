package codec

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"qr-engine/internal/common/errors"
)

// Shared field rules used by several codecs. Each returns the normalized value
// or the first violated rule as a validation error.

func requiredString(raw RawFields, key string) (string, error) {
	v, ok, err := raw.String(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.NewMissingFieldError(key, fmt.Sprintf("%s is required", key))
	}
	return v, nil
}

func optionalString(raw RawFields, key string) (*string, error) {
	v, ok, err := raw.String(key)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// optionalText is optionalString plus a rune length ceiling.
func optionalText(raw RawFields, key string, max int) (*string, error) {
	v, err := optionalString(raw, key)
	if err != nil || v == nil {
		return nil, err
	}
	if err := maxRunes(key, *v, max); err != nil {
		return nil, err
	}
	return v, nil
}

// requiredText is requiredString plus a rune length ceiling.
func requiredText(raw RawFields, key string, max int) (string, error) {
	v, err := requiredString(raw, key)
	if err != nil {
		return "", err
	}
	if err := maxRunes(key, v, max); err != nil {
		return "", err
	}
	return v, nil
}

func maxRunes(key, v string, max int) error {
	if runeLen(v) > max {
		return errors.NewOutOfRangeError(key, fmt.Sprintf("%s must be at most %d characters", key, max))
	}
	return nil
}

func lengthBetween(key, v string, min, max int) error {
	n := runeLen(v)
	if n < min || n > max {
		return errors.NewOutOfRangeError(key, fmt.Sprintf("%s must be between %d and %d characters", key, min, max))
	}
	return nil
}

const maxURLLength = 2048

// normalizeHTTPURL checks that v is an absolute http(s) URL with a host and
// lower-cases its scheme and host. The rest of the URL is kept byte for byte.
func normalizeHTTPURL(key, v string) (string, error) {
	if len(v) > maxURLLength {
		return "", errors.NewOutOfRangeError(key, fmt.Sprintf("%s must be at most %d characters", key, maxURLLength))
	}
	if strings.ContainsAny(v, " \t\r\n") {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s must not contain whitespace", key))
	}

	u, err := url.Parse(v)
	if err != nil {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s is not a valid URL", key))
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s must use http or https", key))
	}
	if u.Hostname() == "" {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s must include a host", key))
	}

	// scheme "://" authority rest
	rest := v[len(u.Scheme)+len("://"):]
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	authority := rest[:end]
	userinfo := ""
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		userinfo, authority = authority[:at+1], authority[at+1:]
	}
	return scheme + "://" + userinfo + strings.ToLower(authority) + rest[end:], nil
}

const maxEmailLength = 254

// normalizeEmail accepts a bare RFC 5322 address and lower-cases it.
func normalizeEmail(key, v string) (string, error) {
	if len(v) > maxEmailLength {
		return "", errors.NewOutOfRangeError(key, fmt.Sprintf("%s must be at most %d characters", key, maxEmailLength))
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Name != "" || addr.Address != v {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s is not a valid email address", key))
	}
	domain := v[strings.LastIndex(v, "@")+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s is not a valid email address", key))
	}
	return strings.ToLower(v), nil
}

// normalizeDialable strips separators from a dialable number and keeps an
// optional leading "+". The digit count must be 7 to 15 (E.164 ceiling).
func normalizeDialable(key, v string) (string, error) {
	s := stripSeparators(v)
	plus := strings.HasPrefix(s, "+")
	digits := strings.TrimPrefix(s, "+")
	if !isDigits(digits) {
		return "", errors.NewBadFormatError(key, fmt.Sprintf("%s must contain only digits and an optional leading +", key))
	}
	if len(digits) < 7 || len(digits) > 15 {
		return "", errors.NewOutOfRangeError(key, fmt.Sprintf("%s must have between 7 and 15 digits", key))
	}
	if plus {
		return "+" + digits, nil
	}
	return digits, nil
}

func optionalURL(raw RawFields, key string) (*string, error) {
	v, err := optionalString(raw, key)
	if err != nil || v == nil {
		return nil, err
	}
	n, err := normalizeHTTPURL(key, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalEmail(raw RawFields, key string) (*string, error) {
	v, err := optionalString(raw, key)
	if err != nil || v == nil {
		return nil, err
	}
	n, err := normalizeEmail(key, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalDialable(raw RawFields, key string) (*string, error) {
	v, err := optionalString(raw, key)
	if err != nil || v == nil {
		return nil, err
	}
	n, err := normalizeDialable(key, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
