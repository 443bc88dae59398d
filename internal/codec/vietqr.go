package codec

import (
	"fmt"
	"strings"

	"qr-engine/internal/common/errors"
	"qr-engine/internal/reference"
)

const (
	vietQRImageBase       = "https://img.vietqr.io/image/"
	vietQRMaxAmount       = 500_000_000
	vietQRDefaultTemplate = "compact"
)

var vietQRTemplates = map[string]bool{
	"compact": true,
	"print":   true,
	"qr_only": true,
	"default": true,
}

type vietQRFields struct {
	Bank          reference.Bank
	AccountNumber string
	AccountName   string
	Amount        *int64
	Description   *string
	Template      string
}

func (e *Engine) validateVietQR(raw RawFields) (vietQRFields, error) {
	var f vietQRFields

	code, err := requiredString(raw, "bankCode")
	if err != nil {
		return f, err
	}
	bank, ok := e.tables.Bank(upperCode(code))
	if !ok {
		return f, errors.NewBadFormatError("bankCode", fmt.Sprintf("bank code %q is not a VietQR participant", upperCode(code)))
	}
	f.Bank = bank

	account, err := requiredString(raw, "accountNumber")
	if err != nil {
		return f, err
	}
	account = keepDigits(account)
	if len(account) < 6 || len(account) > 20 {
		return f, errors.NewOutOfRangeError("accountNumber", "accountNumber must have between 6 and 20 digits")
	}
	f.AccountNumber = account

	name, err := requiredString(raw, "accountName")
	if err != nil {
		return f, err
	}
	name = bankAccountName(name)
	for _, r := range name {
		if !(r >= 'A' && r <= 'Z' || r == ' ') {
			return f, errors.NewBadFormatError("accountName", "accountName may contain only letters and spaces")
		}
	}
	if err := maxRunes("accountName", name, 50); err != nil {
		return f, err
	}
	f.AccountName = name

	amount, ok, err := raw.Number("amount")
	if err != nil {
		return f, err
	}
	if ok {
		if amount <= 0 || amount > vietQRMaxAmount {
			return f, errors.NewOutOfRangeError("amount", fmt.Sprintf("amount must be greater than 0 and at most %d VND", vietQRMaxAmount))
		}
		rounded := int64(roundTo(amount, 0))
		if rounded < 1 {
			return f, errors.NewOutOfRangeError("amount", "amount must be at least 1 VND after rounding")
		}
		f.Amount = &rounded
	}

	if f.Description, err = optionalText(raw, "description", 255); err != nil {
		return f, err
	}

	f.Template = vietQRDefaultTemplate
	if t, ok, err := raw.String("template"); err != nil {
		return f, err
	} else if ok {
		t = foldIdentifier(t)
		if !vietQRTemplates[t] {
			return f, errors.NewUnsupportedOptionError("template",
				fmt.Sprintf("template %q is not supported; use compact, print, qr_only or default", t))
		}
		f.Template = t
	}

	return f, nil
}

func (e *Engine) buildVietQR(f vietQRFields) Payload {
	var b strings.Builder
	b.WriteString(vietQRImageBase)
	b.WriteString(f.Bank.Code + "-" + f.AccountNumber + "-" + f.Template + ".jpg")
	b.WriteString("?accountName=" + encodeComponent(f.AccountName))
	if f.Amount != nil {
		b.WriteString("&amount=" + plainInt(*f.Amount))
	}
	if f.Description != nil {
		b.WriteString("&addInfo=" + encodeComponent(*f.Description))
	}

	m := meta{
		"bankCode":      f.Bank.Code,
		"bankName":      f.Bank.ShortName,
		"bankFullName":  f.Bank.Name,
		"bankBin":       f.Bank.BIN,
		"accountNumber": f.AccountNumber,
		"accountName":   f.AccountName,
		"template":      f.Template,
		"currency":      "VND",
		"platform":      "VIETQR",
	}
	if f.Amount != nil {
		m.set("amount", *f.Amount)
		m.set("formattedAmount", displayAmount(e.opts.DisplayLocale, float64(*f.Amount), 0, "VND"))
	}
	m.str("description", f.Description)
	return newPayload(TypeVietQR, b.String(), m)
}
