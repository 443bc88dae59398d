package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"qr-engine/internal/common/errors"

	"github.com/spf13/cast"
)

const maxExactFloat = 1 << 53

var integerText = regexp.MustCompile(`^-?[0-9]+$`)

// RawFields is one request's unvalidated field set as decoded from JSON.
// Accessors distinguish "absent" from "present but malformed": a missing key,
// a JSON null and a blank string are all absent.
type RawFields map[string]interface{}

// String returns the trimmed value of key. Integral numbers are accepted and
// rendered in plain decimal form so that identifiers sent as JSON numbers
// still work. A number that cannot be rendered exactly is BAD_FORMAT.
func (r RawFields) String(key string) (string, bool, error) {
	s, ok, err := r.RawString(key)
	if !ok || err != nil {
		return "", ok, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}

// RawString is String without trimming, for values where surrounding
// whitespace is significant (SSIDs, passwords).
func (r RawFields) RawString(key string) (string, bool, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false, nil
	}

	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return "", false, nil
		}
		return val, true, nil
	case bool, map[string]interface{}, []interface{}:
		return "", false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be a string", key))
	case float64:
		// float64 only carries integers exactly up to 2^53
		if math.IsNaN(val) || math.IsInf(val, 0) || val != math.Trunc(val) || math.Abs(val) > maxExactFloat {
			return "", false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be sent as a string", key))
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	case json.Number:
		if !integerText.MatchString(val.String()) {
			return "", false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be sent as a string", key))
		}
		return val.String(), true, nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be a string", key))
	}
	return s, true, nil
}

// Number returns key as a float64. Numeric strings are accepted.
func (r RawFields) Number(key string) (float64, bool, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false, nil
	}

	switch val := v.(type) {
	case bool, map[string]interface{}, []interface{}:
		return 0, false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be a number", key))
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return 0, false, nil
		}
		v = val
	case json.Number:
		v = val.String()
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be a number", key))
	}
	return f, true, nil
}

// Bool returns key as a bool. "true"/"false" strings are accepted.
func (r RawFields) Bool(key string) (bool, bool, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return false, false, nil
	}

	switch val := v.(type) {
	case bool:
		return val, true, nil
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return false, false, nil
		}
		b, err := cast.ToBoolE(strings.ToLower(val))
		if err != nil {
			return false, false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be a boolean", key))
		}
		return b, true, nil
	default:
		return false, false, errors.NewBadFormatError(key, fmt.Sprintf("%s must be a boolean", key))
	}
}

// Has reports whether key carries a non-blank value.
func (r RawFields) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}
