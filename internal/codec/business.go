package codec

import "strings"

type businessFields struct {
	Name    string
	Phone   *string
	Email   *string
	Website *string
	Address *string
	Note    *string
}

func validateBusinessPage(raw RawFields) (businessFields, error) {
	var f businessFields
	var err error

	if f.Name, err = requiredText(raw, "businessName", 100); err != nil {
		return f, err
	}
	if f.Phone, err = optionalDialable(raw, "phone"); err != nil {
		return f, err
	}
	if f.Email, err = optionalEmail(raw, "email"); err != nil {
		return f, err
	}
	if f.Website, err = optionalURL(raw, "website"); err != nil {
		return f, err
	}
	if f.Address, err = optionalText(raw, "address", 255); err != nil {
		return f, err
	}
	if f.Note, err = optionalText(raw, "note", 255); err != nil {
		return f, err
	}
	return f, nil
}

func buildBusinessPage(f businessFields) Payload {
	var b strings.Builder
	b.WriteString("MECARD:N:")
	b.WriteString(escapeMeCard(f.Name))
	b.WriteByte(';')
	for _, part := range []struct {
		tag string
		v   *string
	}{
		{"TEL", f.Phone},
		{"EMAIL", f.Email},
		{"URL", f.Website},
		{"ADR", f.Address},
		{"NOTE", f.Note},
	} {
		if part.v == nil {
			continue
		}
		b.WriteString(part.tag)
		b.WriteByte(':')
		b.WriteString(escapeMeCard(*part.v))
		b.WriteByte(';')
	}
	b.WriteByte(';')

	m := meta{"businessName": f.Name}
	m.str("phone", f.Phone).str("email", f.Email).str("website", f.Website).
		str("address", f.Address).str("note", f.Note)
	return newPayload(TypeBusinessPage, b.String(), m)
}
