package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qr-engine/internal/common/errors"
	"qr-engine/internal/reference"
)

func TestVietQR_Minimal(t *testing.T) {
	e := newTestEngine(t)

	p := mustEncode(t, e, "vietqr", RawFields{
		"bankCode":      "vcb",
		"accountNumber": "123 456 789",
		"accountName":   "NGUYEN VAN A",
	})
	assert.Equal(t, "https://img.vietqr.io/image/VCB-123456789-compact.jpg?accountName=NGUYEN%20VAN%20A", p.Canonical)
	assert.Contains(t, p.Canonical, "VCB-123456789")
	assert.Equal(t, "VCB", p.Metadata["bankCode"])
	assert.Equal(t, "970436", p.Metadata["bankBin"])
	assert.Equal(t, "Vietcombank", p.Metadata["bankName"])
	assert.Equal(t, "VND", p.Metadata["currency"])
	assert.NotContains(t, p.Metadata, "amount")
	assert.NotContains(t, p.Canonical, "amount=")
	assert.NotContains(t, p.Canonical, "addInfo=")
}

func TestVietQR_Full(t *testing.T) {
	e := newTestEngine(t)

	p := mustEncode(t, e, "vietqr", RawFields{
		"bankCode":      "Vietcombank",
		"accountNumber": "0123-4567-89",
		"accountName":   "  Nguyễn   Văn Đức ",
		"amount":        100000,
		"description":   "Thanh toan don hang #42",
		"template":      "PRINT",
	})
	assert.Equal(t,
		"https://img.vietqr.io/image/VCB-0123456789-print.jpg?accountName=NGUYEN%20VAN%20DUC&amount=100000&addInfo=Thanh%20toan%20don%20hang%20%2342",
		p.Canonical)
	assert.Equal(t, int64(100000), p.Metadata["amount"])
	assert.Equal(t, "NGUYEN VAN DUC", p.Metadata["accountName"])
	assert.Equal(t, "print", p.Metadata["template"])

	formatted, ok := p.Metadata["formattedAmount"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(formatted, " VND"))
	assert.NotContains(t, p.Canonical, formatted)
}

func TestVietQR_AmountsProduceDistinctPayloads(t *testing.T) {
	e := newTestEngine(t)
	base := func(amount int) RawFields {
		return RawFields{"bankCode": "VCB", "accountNumber": "123456789", "accountName": "NGUYEN VAN A", "amount": amount}
	}

	a := mustEncode(t, e, "vietqr", base(100000))
	b := mustEncode(t, e, "vietqr", base(200000))
	assert.NotEqual(t, a.Canonical, b.Canonical)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestVietQR_NormalizedFieldsAreAFixedPoint(t *testing.T) {
	e := newTestEngine(t)

	first := mustEncode(t, e, "vietqr", RawFields{
		"bankCode":      "vietinbank",
		"accountNumber": "1 0 1 8 7 6 5 4 3",
		"accountName":   "trần thị bình",
		"amount":        "25000.4",
	})
	second := mustEncode(t, e, "vietqr", RawFields{
		"bankCode":      first.Metadata["bankCode"],
		"accountNumber": first.Metadata["accountNumber"],
		"accountName":   first.Metadata["accountName"],
		"amount":        first.Metadata["amount"],
	})
	assert.Equal(t, first.Canonical, second.Canonical)
	assert.Equal(t, "CTG", first.Metadata["bankCode"])
	assert.Equal(t, int64(25000), first.Metadata["amount"])
}

func TestVietQR_Rejects(t *testing.T) {
	e := newTestEngine(t)
	valid := func(over RawFields) RawFields {
		raw := RawFields{"bankCode": "VCB", "accountNumber": "123456789", "accountName": "NGUYEN VAN A"}
		for k, v := range over {
			raw[k] = v
		}
		return raw
	}

	runRejects(t, e, "vietqr", []rejectCase{
		{"missing bank", RawFields{"accountNumber": "123456789", "accountName": "A"}, errors.ErrCodeMissingField, "bankCode"},
		{"unknown bank", valid(RawFields{"bankCode": "XYZ"}), errors.ErrCodeBadFormat, "bankCode"},
		{"unknown bank wins over bad account", valid(RawFields{"bankCode": "XYZ", "accountNumber": "abc"}), errors.ErrCodeBadFormat, "bankCode"},
		{"missing account", RawFields{"bankCode": "VCB", "accountName": "A"}, errors.ErrCodeMissingField, "accountNumber"},
		{"account without digits", valid(RawFields{"accountNumber": "ACC-NUMBER"}), errors.ErrCodeOutOfRange, "accountNumber"},
		{"account short after stripping", valid(RawFields{"accountNumber": "AB12/345"}), errors.ErrCodeOutOfRange, "accountNumber"},
		{"short account", valid(RawFields{"accountNumber": "12345"}), errors.ErrCodeOutOfRange, "accountNumber"},
		{"long account", valid(RawFields{"accountNumber": strings.Repeat("1", 21)}), errors.ErrCodeOutOfRange, "accountNumber"},
		{"missing name", RawFields{"bankCode": "VCB", "accountNumber": "123456789"}, errors.ErrCodeMissingField, "accountName"},
		{"digits in name", valid(RawFields{"accountName": "NGUYEN 2"}), errors.ErrCodeBadFormat, "accountName"},
		{"long name", valid(RawFields{"accountName": strings.Repeat("A", 51)}), errors.ErrCodeOutOfRange, "accountName"},
		{"amount over ceiling", valid(RawFields{"amount": 600000000}), errors.ErrCodeOutOfRange, "amount"},
		{"zero amount", valid(RawFields{"amount": 0}), errors.ErrCodeOutOfRange, "amount"},
		{"negative amount", valid(RawFields{"amount": -5}), errors.ErrCodeOutOfRange, "amount"},
		{"amount rounds to zero", valid(RawFields{"amount": 0.4}), errors.ErrCodeOutOfRange, "amount"},
		{"amount not numeric", valid(RawFields{"amount": "lots"}), errors.ErrCodeBadFormat, "amount"},
		{"long description", valid(RawFields{"description": strings.Repeat("d", 256)}), errors.ErrCodeOutOfRange, "description"},
		{"unknown template", valid(RawFields{"template": "fancy"}), errors.ErrCodeUnsupportedOption, "template"},
	})
}

func TestVietQR_AccountNumberKeepsOnlyDigits(t *testing.T) {
	e := newTestEngine(t)

	for _, account := range []string{"ACC-123456789", "123/456/789", "123 456 789", "#123_456_789"} {
		t.Run(account, func(t *testing.T) {
			p := mustEncode(t, e, "vietqr", RawFields{
				"bankCode":      "VCB",
				"accountNumber": account,
				"accountName":   "NGUYEN VAN A",
			})
			assert.Contains(t, p.Canonical, "/VCB-123456789-compact.jpg")
			assert.Equal(t, "123456789", p.Metadata["accountNumber"])
		})
	}
}

func TestVietQR_NumericAccountNumber(t *testing.T) {
	e := newTestEngine(t)
	raw := func(account interface{}) RawFields {
		return RawFields{"bankCode": "VCB", "accountNumber": account, "accountName": "NGUYEN VAN A"}
	}

	p := mustEncode(t, e, "vietqr", raw(float64(123456789)))
	assert.Contains(t, p.Canonical, "VCB-123456789-")

	p = mustEncode(t, e, "vietqr", raw(json.Number("98765432109876543210")))
	assert.Contains(t, p.Canonical, "VCB-98765432109876543210-")

	runRejects(t, e, "vietqr", []rejectCase{
		{"float above 2^53", raw(float64(12345678901234567891)), errors.ErrCodeBadFormat, "accountNumber"},
		{"fractional float", raw(1234567.5), errors.ErrCodeBadFormat, "accountNumber"},
		{"fractional json number", raw(json.Number("1234567.5")), errors.ErrCodeBadFormat, "accountNumber"},
		{"exponent json number", raw(json.Number("1e9")), errors.ErrCodeBadFormat, "accountNumber"},
	})
}

func TestVietQR_AmountCeilingIsInclusive(t *testing.T) {
	e := newTestEngine(t)
	p := mustEncode(t, e, "vietqr", RawFields{
		"bankCode": "VCB", "accountNumber": "123456789", "accountName": "A", "amount": 500000000,
	})
	assert.Contains(t, p.Canonical, "&amount=500000000")
}

func TestWeChatPay(t *testing.T) {
	e := newTestEngine(t)

	p := mustEncode(t, e, "wechat_pay", RawFields{"merchantId": "1234567890"})
	assert.Equal(t, "weixin://wxpay/bizpayurl?mchid=1234567890", p.Canonical)
	assert.Equal(t, "CNY", p.Metadata["currency"])
	assert.Equal(t, "static", p.Metadata["mode"])
	assert.Equal(t, "WeChat Pay", p.Metadata["platformName"])

	p = mustEncode(t, e, "wechat_pay", RawFields{
		"merchantId":  "12345 67890",
		"currency":    "vnd",
		"amount":      12.5,
		"description": "Coffee",
		"orderId":     "ORDER_2024-01",
	})
	assert.Equal(t, "weixin://wxpay/bizpayurl?mchid=1234567890", p.Canonical)
	assert.Equal(t, "VND", p.Metadata["currency"])
	assert.Equal(t, 12.5, p.Metadata["amount"])
	assert.Equal(t, "12.50", p.Metadata["amountText"])
	assert.Equal(t, "ORDER_2024-01", p.Metadata["orderId"])

	runRejects(t, e, "wechat_pay", []rejectCase{
		{"missing merchant", RawFields{}, errors.ErrCodeMissingField, "merchantId"},
		{"short merchant", RawFields{"merchantId": "12345"}, errors.ErrCodeBadFormat, "merchantId"},
		{"letters in merchant", RawFields{"merchantId": "12345abcde"}, errors.ErrCodeBadFormat, "merchantId"},
		{"unknown currency", RawFields{"merchantId": "1234567890", "currency": "USD"}, errors.ErrCodeUnsupportedOption, "currency"},
		{"amount over limit", RawFields{"merchantId": "1234567890", "amount": 1000001}, errors.ErrCodeOutOfRange, "amount"},
		{"zero amount", RawFields{"merchantId": "1234567890", "amount": 0}, errors.ErrCodeOutOfRange, "amount"},
		{"tiny amount", RawFields{"merchantId": "1234567890", "amount": 0.001}, errors.ErrCodeOutOfRange, "amount"},
		{"bad order id", RawFields{"merchantId": "1234567890", "orderId": "order #1"}, errors.ErrCodeBadFormat, "orderId"},
		{"long order id", RawFields{"merchantId": "1234567890", "orderId": strings.Repeat("o", 33)}, errors.ErrCodeOutOfRange, "orderId"},
	})
}

func TestWeChatPay_TableSuppliesLimitsOnly(t *testing.T) {
	data := reference.DefaultData()
	data.Currencies = []reference.Currency{
		{Code: "CNY", MaxAmount: 500, Decimals: 2, Locale: "zh-CN"},
		{Code: "VND", MaxAmount: 5_000_000_000, Decimals: 0, Locale: "vi-VN"},
		{Code: "USD", MaxAmount: 10_000, Decimals: 2, Locale: "en-US"},
	}
	tables, err := reference.NewTables(data)
	require.NoError(t, err)
	e := NewEngine(tables, Options{})

	_, err = e.Encode("wechat_pay", RawFields{"merchantId": "1234567890", "currency": "USD"})
	requireValidation(t, err, errors.ErrCodeUnsupportedOption, "currency")

	_, err = e.Encode("wechat_pay", RawFields{"merchantId": "1234567890", "amount": 501})
	requireValidation(t, err, errors.ErrCodeOutOfRange, "amount")

	p := mustEncode(t, e, "wechat_pay", RawFields{"merchantId": "1234567890", "currency": "VND", "amount": 12.5})
	assert.Equal(t, 13.0, p.Metadata["amount"])
	assert.Equal(t, "13", p.Metadata["amountText"])
}

func TestWeChatPay_CurrencyMissingFromTable(t *testing.T) {
	data := reference.DefaultData()
	data.Currencies = []reference.Currency{{Code: "CNY", MaxAmount: 1_000_000, Decimals: 2, Locale: "zh-CN"}}
	tables, err := reference.NewTables(data)
	require.NoError(t, err)
	e := NewEngine(tables, Options{})

	mustEncode(t, e, "wechat_pay", RawFields{"merchantId": "1234567890"})
	_, err = e.Encode("wechat_pay", RawFields{"merchantId": "1234567890", "currency": "VND"})
	requireValidation(t, err, errors.ErrCodeUnsupportedOption, "currency")
}

func TestMoMo(t *testing.T) {
	e := newTestEngine(t)

	p := mustEncode(t, e, "momo", RawFields{"phoneNumber": "+84 912 345 678"})
	assert.Equal(t, "https://nhantien.momo.vn/0912345678", p.Canonical)

	p = mustEncode(t, e, "momo", RawFields{"phoneNumber": "0912345678", "amount": 50000, "message": "tra tien"})
	assert.Equal(t, "https://nhantien.momo.vn/0912345678/50000", p.Canonical)
	assert.Equal(t, int64(50000), p.Metadata["amount"])
	assert.Equal(t, "tra tien", p.Metadata["message"])

	runRejects(t, e, "momo", []rejectCase{
		{"missing phone", RawFields{}, errors.ErrCodeMissingField, "phoneNumber"},
		{"landline prefix", RawFields{"phoneNumber": "0212345678"}, errors.ErrCodeBadFormat, "phoneNumber"},
		{"short", RawFields{"phoneNumber": "091234567"}, errors.ErrCodeBadFormat, "phoneNumber"},
		{"letters", RawFields{"phoneNumber": "09123abc78"}, errors.ErrCodeBadFormat, "phoneNumber"},
		{"amount too small", RawFields{"phoneNumber": "0912345678", "amount": 999}, errors.ErrCodeOutOfRange, "amount"},
		{"amount too large", RawFields{"phoneNumber": "0912345678", "amount": 50000001}, errors.ErrCodeOutOfRange, "amount"},
		{"message too long", RawFields{"phoneNumber": "0912345678", "message": strings.Repeat("m", 101)}, errors.ErrCodeOutOfRange, "message"},
	})
}
