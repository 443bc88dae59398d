package codec

import (
	"regexp"

	"qr-engine/internal/common/errors"
)

var pdfSuffix = regexp.MustCompile(`(?i)\.pdf$`)

type pdfFields struct {
	URL   string
	Title *string
}

func validatePDF(raw RawFields) (pdfFields, error) {
	var f pdfFields

	v, err := requiredString(raw, "url")
	if err != nil {
		return f, err
	}
	if f.URL, err = normalizeHTTPURL("url", v); err != nil {
		return f, err
	}
	if !pdfSuffix.MatchString(f.URL) {
		return f, errors.NewBadFormatError("url", "url must point to a .pdf file")
	}
	if f.Title, err = optionalText(raw, "title", 255); err != nil {
		return f, err
	}
	return f, nil
}

func buildPDF(f pdfFields) Payload {
	m := meta{"url": f.URL}.str("title", f.Title)
	return newPayload(TypePDF, f.URL, m)
}
