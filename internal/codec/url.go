package codec

type urlFields struct {
	URL string
}

func validateURL(raw RawFields) (urlFields, error) {
	v, err := requiredString(raw, "url")
	if err != nil {
		return urlFields{}, err
	}
	u, err := normalizeHTTPURL("url", v)
	if err != nil {
		return urlFields{}, err
	}
	return urlFields{URL: u}, nil
}

func buildURL(f urlFields) Payload {
	return newPayload(TypeURL, f.URL, meta{"url": f.URL})
}
