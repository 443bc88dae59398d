package codec

import (
	"qr-engine/internal/common/errors"
)

const zaloBase = "https://zalo.me/"

type zaloFields struct {
	Identifier     string
	IdentifierType string
	LocalPhone     *string
	Message        *string
	DisplayName    *string
}

// validateZalo accepts a phone number or a Zalo ID. When both are present the
// phone number wins and zaloId is not inspected.
func (e *Engine) validateZalo(raw RawFields) (zaloFields, error) {
	var f zaloFields

	phone, err := optionalString(raw, "phoneNumber")
	if err != nil {
		return f, err
	}
	if phone != nil {
		local, err := e.normalizeVNMobile("phoneNumber", *phone)
		if err != nil {
			return f, err
		}
		f.Identifier = internationalVN(local)
		f.IdentifierType = "phone"
		f.LocalPhone = &local
	} else {
		id, err := optionalString(raw, "zaloId")
		if err != nil {
			return f, err
		}
		if id == nil {
			return f, errors.NewMissingFieldError("phoneNumber", "phoneNumber or zaloId is required")
		}
		if !isAlnum(*id) {
			return f, errors.NewBadFormatError("zaloId", "zaloId may contain only letters and digits")
		}
		if err := lengthBetween("zaloId", *id, 6, 30); err != nil {
			return f, err
		}
		f.Identifier = foldIdentifier(*id)
		f.IdentifierType = "zaloId"
	}

	if f.Message, err = optionalText(raw, "message", 500); err != nil {
		return f, err
	}
	if f.DisplayName, err = optionalText(raw, "displayName", 100); err != nil {
		return f, err
	}
	return f, nil
}

func buildZalo(f zaloFields) Payload {
	canonical := zaloBase + f.Identifier
	if f.Message != nil {
		canonical += "?msg=" + encodeComponent(*f.Message)
	}

	m := meta{
		"identifier":     f.Identifier,
		"identifierType": f.IdentifierType,
		"platform":       "ZALO",
	}
	m.str("phoneNumber", f.LocalPhone).str("message", f.Message).str("displayName", f.DisplayName)
	return newPayload(TypeZalo, canonical, m)
}
