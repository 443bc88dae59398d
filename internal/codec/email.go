package codec

import "strings"

type emailFields struct {
	Email   string
	Subject *string
	Body    *string
}

func validateEmail(raw RawFields) (emailFields, error) {
	v, err := requiredString(raw, "email")
	if err != nil {
		return emailFields{}, err
	}
	addr, err := normalizeEmail("email", v)
	if err != nil {
		return emailFields{}, err
	}
	subject, err := optionalText(raw, "subject", 255)
	if err != nil {
		return emailFields{}, err
	}
	body, err := optionalText(raw, "body", 1000)
	if err != nil {
		return emailFields{}, err
	}
	return emailFields{Email: addr, Subject: subject, Body: body}, nil
}

func buildEmail(f emailFields) Payload {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(f.Email)

	sep := "?"
	if f.Subject != nil {
		b.WriteString(sep + "subject=" + encodeComponent(*f.Subject))
		sep = "&"
	}
	if f.Body != nil {
		b.WriteString(sep + "body=" + encodeComponent(*f.Body))
	}

	m := meta{"email": f.Email}.str("subject", f.Subject).str("body", f.Body)
	return newPayload(TypeEmail, b.String(), m)
}
