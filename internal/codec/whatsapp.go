package codec

import (
	"strings"

	"qr-engine/internal/common/errors"
)

const whatsAppBase = "https://wa.me/"

type whatsAppFields struct {
	Phone   string
	Message *string
}

func validateWhatsApp(raw RawFields) (whatsAppFields, error) {
	var f whatsAppFields

	v, err := requiredString(raw, "phoneNumber")
	if err != nil {
		return f, err
	}
	digits := strings.TrimPrefix(stripSeparators(v), "+")
	if !isDigits(digits) {
		return f, errors.NewBadFormatError("phoneNumber", "phoneNumber must be an international number of digits")
	}
	if digits[0] == '0' {
		return f, errors.NewBadFormatError("phoneNumber", "phoneNumber must start with a country code, not 0")
	}
	if len(digits) < 8 || len(digits) > 15 {
		return f, errors.NewOutOfRangeError("phoneNumber", "phoneNumber must have between 8 and 15 digits")
	}
	f.Phone = digits

	if f.Message, err = optionalText(raw, "message", 1000); err != nil {
		return f, err
	}
	return f, nil
}

func buildWhatsApp(f whatsAppFields) Payload {
	canonical := whatsAppBase + f.Phone
	if f.Message != nil {
		canonical += "?text=" + encodeComponent(*f.Message)
	}
	m := meta{"phoneNumber": f.Phone, "platform": "WHATSAPP"}.str("message", f.Message)
	return newPayload(TypeWhatsApp, canonical, m)
}
