package codec

import (
	"strings"

	"qr-engine/internal/common/errors"
)

type lineFields struct {
	ID       string
	Official bool
	Message  *string
}

func validLineID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

func validateLine(raw RawFields) (lineFields, error) {
	var f lineFields

	id, err := requiredString(raw, "lineId")
	if err != nil {
		return f, err
	}
	id = foldIdentifier(id)
	if strings.HasPrefix(id, "@") {
		f.Official = true
		id = id[1:]
	}
	if !validLineID(id) {
		return f, errors.NewBadFormatError("lineId", "lineId may contain only letters, digits, '.', '_' and '-'")
	}
	if err := lengthBetween("lineId", id, 4, 20); err != nil {
		return f, err
	}
	f.ID = id

	if f.Message, err = optionalText(raw, "message", 500); err != nil {
		return f, err
	}
	if f.Message != nil && !f.Official {
		return f, errors.NewUnsupportedOptionError("message", "a prefilled message is only supported for official (@) accounts")
	}
	return f, nil
}

func buildLine(f lineFields) Payload {
	var canonical string
	accountType := "personal"
	switch {
	case f.Official && f.Message != nil:
		accountType = "official"
		canonical = "https://line.me/R/oaMessage/" + encodeComponent("@"+f.ID) + "/?" + encodeComponent(*f.Message)
	case f.Official:
		accountType = "official"
		canonical = "https://line.me/R/ti/p/" + encodeComponent("@"+f.ID)
	default:
		canonical = "https://line.me/ti/p/~" + f.ID
	}

	m := meta{
		"lineId":      f.ID,
		"accountType": accountType,
		"platform":    "LINE",
	}
	m.str("message", f.Message)
	return newPayload(TypeLine, canonical, m)
}
