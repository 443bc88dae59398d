package codec

import (
	"fmt"

	"qr-engine/internal/common/errors"
)

const (
	momoBase      = "https://nhantien.momo.vn/"
	momoMinAmount = 1_000
	momoMaxAmount = 50_000_000
)

type momoFields struct {
	Phone   string
	Amount  *int64
	Message *string
}

func (e *Engine) validateMoMo(raw RawFields) (momoFields, error) {
	var f momoFields

	v, err := requiredString(raw, "phoneNumber")
	if err != nil {
		return f, err
	}
	if f.Phone, err = e.normalizeVNMobile("phoneNumber", v); err != nil {
		return f, err
	}

	amount, ok, err := raw.Number("amount")
	if err != nil {
		return f, err
	}
	if ok {
		rounded := int64(roundTo(amount, 0))
		if rounded < momoMinAmount || rounded > momoMaxAmount {
			return f, errors.NewOutOfRangeError("amount",
				fmt.Sprintf("amount must be between %d and %d VND", momoMinAmount, momoMaxAmount))
		}
		f.Amount = &rounded
	}

	if f.Message, err = optionalText(raw, "message", 100); err != nil {
		return f, err
	}
	return f, nil
}

func (e *Engine) buildMoMo(f momoFields) Payload {
	canonical := momoBase + f.Phone
	m := meta{
		"phoneNumber": f.Phone,
		"platform":    "MOMO",
		"currency":    "VND",
	}
	if p, ok := e.tables.Platform("MOMO"); ok {
		m.set("platformName", p.Name)
	}
	if f.Amount != nil {
		canonical += "/" + plainInt(*f.Amount)
		m.set("amount", *f.Amount)
		m.set("formattedAmount", displayAmount(e.opts.DisplayLocale, float64(*f.Amount), 0, "VND"))
	}
	m.str("message", f.Message)
	return newPayload(TypeMoMo, canonical, m)
}
