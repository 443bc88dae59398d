package codec

const maxSMSLength = 160

type phoneFields struct {
	Phone string
}

func validatePhone(raw RawFields) (phoneFields, error) {
	v, err := requiredString(raw, "phoneNumber")
	if err != nil {
		return phoneFields{}, err
	}
	p, err := normalizeDialable("phoneNumber", v)
	if err != nil {
		return phoneFields{}, err
	}
	return phoneFields{Phone: p}, nil
}

func buildPhone(f phoneFields) Payload {
	return newPayload(TypePhone, "tel:"+f.Phone, meta{"phoneNumber": f.Phone})
}

type smsFields struct {
	Phone   string
	Message *string
}

func validateSMS(raw RawFields) (smsFields, error) {
	p, err := validatePhone(raw)
	if err != nil {
		return smsFields{}, err
	}
	msg, err := optionalText(raw, "message", maxSMSLength)
	if err != nil {
		return smsFields{}, err
	}
	return smsFields{Phone: p.Phone, Message: msg}, nil
}

func buildSMS(f smsFields) Payload {
	msg := ""
	if f.Message != nil {
		msg = *f.Message
	}
	m := meta{"phoneNumber": f.Phone}.str("message", f.Message)
	return newPayload(TypeSMS, "SMSTO:"+f.Phone+":"+msg, m)
}
