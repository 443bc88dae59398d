package codec

import (
	"strings"

	"qr-engine/internal/common/errors"
)

type vcardFields struct {
	FirstName    *string
	LastName     *string
	Organization *string
	Title        *string
	Phone        *string
	Email        *string
	Website      *string
	Address      *string
}

func validateVCard(raw RawFields) (vcardFields, error) {
	var f vcardFields
	var err error

	if f.FirstName, err = optionalText(raw, "firstName", 50); err != nil {
		return vcardFields{}, err
	}
	if f.LastName, err = optionalText(raw, "lastName", 50); err != nil {
		return vcardFields{}, err
	}
	if f.FirstName == nil && f.LastName == nil {
		return vcardFields{}, errors.NewMissingFieldError("firstName", "firstName or lastName is required")
	}
	if f.Organization, err = optionalText(raw, "organization", 100); err != nil {
		return vcardFields{}, err
	}
	if f.Title, err = optionalText(raw, "title", 100); err != nil {
		return vcardFields{}, err
	}
	if f.Phone, err = optionalDialable(raw, "phone"); err != nil {
		return vcardFields{}, err
	}
	if f.Email, err = optionalEmail(raw, "email"); err != nil {
		return vcardFields{}, err
	}
	if f.Website, err = optionalURL(raw, "website"); err != nil {
		return vcardFields{}, err
	}
	if f.Address, err = optionalText(raw, "address", 255); err != nil {
		return vcardFields{}, err
	}
	return f, nil
}

func (f vcardFields) fullName() string {
	parts := make([]string, 0, 2)
	if f.FirstName != nil {
		parts = append(parts, *f.FirstName)
	}
	if f.LastName != nil {
		parts = append(parts, *f.LastName)
	}
	return strings.Join(parts, " ")
}

func buildVCard(f vcardFields) Payload {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return escapeText(*s)
	}

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + deref(f.LastName) + ";" + deref(f.FirstName) + ";;;",
		"FN:" + escapeText(f.fullName()),
	}
	if f.Organization != nil {
		lines = append(lines, "ORG:"+escapeText(*f.Organization))
	}
	if f.Title != nil {
		lines = append(lines, "TITLE:"+escapeText(*f.Title))
	}
	if f.Phone != nil {
		lines = append(lines, "TEL;TYPE=CELL:"+*f.Phone)
	}
	if f.Email != nil {
		lines = append(lines, "EMAIL:"+*f.Email)
	}
	if f.Website != nil {
		lines = append(lines, "URL:"+*f.Website)
	}
	if f.Address != nil {
		lines = append(lines, "ADR:;;"+escapeText(*f.Address)+";;;;")
	}
	lines = append(lines, "END:VCARD")

	m := meta{"fullName": f.fullName()}.
		str("organization", f.Organization).
		str("title", f.Title).
		str("phone", f.Phone).
		str("email", f.Email).
		str("website", f.Website).
		str("address", f.Address)
	return newPayload(TypeVCard, strings.Join(lines, "\r\n"), m)
}
