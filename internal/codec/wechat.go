package codec

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"qr-engine/internal/common/errors"
	"qr-engine/internal/reference"
)

const (
	weChatPayBase         = "weixin://wxpay/bizpayurl?mchid="
	weChatDefaultCurrency = "CNY"
	weChatMaxOrderID      = 32
)

// weChatCurrencies is the closed set of settlement currencies; the reference
// table only supplies their limits.
var weChatCurrencies = []string{"CNY", "VND"}

var orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type weChatPayFields struct {
	MerchantID  string
	Currency    reference.Currency
	Amount      *float64
	Description *string
	OrderID     *string
}

func (e *Engine) validateWeChatPay(raw RawFields) (weChatPayFields, error) {
	var f weChatPayFields

	mchid, err := requiredString(raw, "merchantId")
	if err != nil {
		return f, err
	}
	mchid = stripWhitespace(mchid)
	if len(mchid) != 10 || !isDigits(mchid) {
		return f, errors.NewBadFormatError("merchantId", "merchantId must be exactly 10 digits")
	}
	f.MerchantID = mchid

	code := weChatDefaultCurrency
	if c, ok, err := raw.String("currency"); err != nil {
		return f, err
	} else if ok {
		code = upperCode(c)
	}
	if !slices.Contains(weChatCurrencies, code) {
		return f, errors.NewUnsupportedOptionError("currency",
			fmt.Sprintf("currency %q is not supported; use %s", code, strings.Join(weChatCurrencies, " or ")))
	}
	cur, ok := e.tables.Currency(code)
	if !ok {
		return f, errors.NewUnsupportedOptionError("currency",
			fmt.Sprintf("currency %q has no configured limits", code))
	}
	f.Currency = cur

	amount, ok, err := raw.Number("amount")
	if err != nil {
		return f, err
	}
	if ok {
		if amount <= 0 || amount > cur.MaxAmount {
			return f, errors.NewOutOfRangeError("amount",
				fmt.Sprintf("amount must be greater than 0 and at most %s %s", plainAmount(cur.MaxAmount, 0), cur.Code))
		}
		rounded := roundTo(amount, cur.Decimals)
		if rounded <= 0 {
			return f, errors.NewOutOfRangeError("amount", "amount rounds to zero")
		}
		f.Amount = &rounded
	}

	if f.Description, err = optionalText(raw, "description", 255); err != nil {
		return f, err
	}

	if f.OrderID, err = optionalString(raw, "orderId"); err != nil {
		return f, err
	}
	if f.OrderID != nil {
		if !orderIDPattern.MatchString(*f.OrderID) {
			return f, errors.NewBadFormatError("orderId", "orderId may contain only letters, digits, - and _")
		}
		if len(*f.OrderID) > weChatMaxOrderID {
			return f, errors.NewOutOfRangeError("orderId", fmt.Sprintf("orderId must be at most %d characters", weChatMaxOrderID))
		}
	}

	return f, nil
}

// buildWeChatPay emits the static merchant QR. The customer keys in the amount
// in this mode, so amount, description and orderId travel in metadata only.
func (e *Engine) buildWeChatPay(f weChatPayFields) Payload {
	m := meta{
		"merchantId": f.MerchantID,
		"currency":   f.Currency.Code,
		"platform":   "WECHAT_PAY",
		"mode":       "static",
	}
	if p, ok := e.tables.Platform("WECHAT_PAY"); ok {
		m.set("platformName", p.Name)
	}
	if f.Amount != nil {
		m.set("amount", *f.Amount)
		m.set("amountText", plainAmount(*f.Amount, f.Currency.Decimals))
		m.set("formattedAmount", displayAmount(e.opts.DisplayLocale, *f.Amount, f.Currency.Decimals, f.Currency.Code))
	}
	m.str("description", f.Description).str("orderId", f.OrderID)
	return newPayload(TypeWeChatPay, weChatPayBase+f.MerchantID, m)
}
