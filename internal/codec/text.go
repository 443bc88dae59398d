package codec

const maxTextLength = 1000

type textFields struct {
	Text string
}

func validateText(raw RawFields) (textFields, error) {
	v, err := requiredText(raw, "text", maxTextLength)
	if err != nil {
		return textFields{}, err
	}
	return textFields{Text: v}, nil
}

func buildText(f textFields) Payload {
	return newPayload(TypeText, f.Text, meta{"length": runeLen(f.Text)})
}
