// Package codec turns typed QR requests into canonical payload strings.
//
// Every QR type has a validator, which normalizes raw fields and reports the
// first violated rule, and a builder, which is a total function from the
// validated fields to a Payload. Engine.Encode is the only entry point. The
// package does no I/O and keeps no mutable state, so one Engine may serve any
// number of goroutines.
package codec

import (
	"fmt"
	"strings"

	"qr-engine/internal/common/errors"
	"qr-engine/internal/reference"
)

// Type identifies a QR payload scheme.
type Type string

const (
	TypeURL          Type = "url"
	TypeText         Type = "text"
	TypeEmail        Type = "email"
	TypePhone        Type = "phone"
	TypeSMS          Type = "sms"
	TypeWiFi         Type = "wifi"
	TypeVCard        Type = "vcard"
	TypeLocation     Type = "location"
	TypeEvent        Type = "event"
	TypeVietQR       Type = "vietqr"
	TypeWeChatPay    Type = "wechat_pay"
	TypeMoMo         Type = "momo"
	TypeZalo         Type = "zalo"
	TypeKakaoTalk    Type = "kakaotalk"
	TypeLine         Type = "line"
	TypeWhatsApp     Type = "whatsapp"
	TypeAppStore     Type = "app_store"
	TypePDF          Type = "pdf"
	TypeBusinessPage Type = "business_page"
)

var allTypes = []Type{
	TypeURL, TypeText, TypeEmail, TypePhone, TypeSMS, TypeWiFi, TypeVCard,
	TypeLocation, TypeEvent, TypeVietQR, TypeWeChatPay, TypeMoMo, TypeZalo,
	TypeKakaoTalk, TypeLine, TypeWhatsApp, TypeAppStore, TypePDF, TypeBusinessPage,
}

// AllTypes lists every supported type in a stable order.
func AllTypes() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType resolves a type identifier. Matching ignores case and surrounding
// space, and treats "-" as "_", so "App-Store" names TypeAppStore.
func ParseType(id string) (Type, error) {
	t := Type(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), "-", "_"))
	for _, known := range allTypes {
		if t == known {
			return t, nil
		}
	}
	if t == "" {
		return "", errors.NewMissingFieldError("type", "type is required")
	}
	return "", errors.NewUnsupportedOptionError("type", fmt.Sprintf("unsupported QR type %q", id))
}

// Options carries deployment specific inputs to the builders.
type Options struct {
	// AppLandingURL is the page a dual-platform app_store payload points at.
	AppLandingURL string
	// DisplayLocale is the BCP 47 tag used for formatted amounts in metadata.
	DisplayLocale string
}

const (
	DefaultAppLandingURL = "https://qr.page/app"
	DefaultDisplayLocale = "vi-VN"
)

// Request is one encode call in struct form.
type Request struct {
	Type   string    `json:"type"`
	Fields RawFields `json:"fields"`
}

// Engine dispatches encode calls to the per-type codecs.
type Engine struct {
	tables *reference.Tables
	opts   Options
}

// NewEngine binds an Engine to loaded reference tables. The tables must not
// be modified afterwards.
func NewEngine(tables *reference.Tables, opts Options) *Engine {
	if opts.AppLandingURL == "" {
		opts.AppLandingURL = DefaultAppLandingURL
	}
	if opts.DisplayLocale == "" {
		opts.DisplayLocale = DefaultDisplayLocale
	}
	return &Engine{tables: tables, opts: opts}
}

// Tables exposes the reference tables the engine validates against.
func (e *Engine) Tables() *reference.Tables {
	return e.tables
}

// EncodeRequest is Encode for a Request value.
func (e *Engine) EncodeRequest(req Request) (*Payload, error) {
	return e.Encode(req.Type, req.Fields)
}

// Encode validates raw as the fields of typeID and builds its payload.
// Any error is a *errors.StandardError with a validation code.
func (e *Engine) Encode(typeID string, raw RawFields) (*Payload, error) {
	t, err := ParseType(typeID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = RawFields{}
	}

	switch t {
	case TypeURL:
		return run(raw, validateURL, buildURL)
	case TypeText:
		return run(raw, validateText, buildText)
	case TypeEmail:
		return run(raw, validateEmail, buildEmail)
	case TypePhone:
		return run(raw, validatePhone, buildPhone)
	case TypeSMS:
		return run(raw, validateSMS, buildSMS)
	case TypeWiFi:
		return run(raw, validateWiFi, buildWiFi)
	case TypeVCard:
		return run(raw, validateVCard, buildVCard)
	case TypeLocation:
		return run(raw, validateLocation, buildLocation)
	case TypeEvent:
		return run(raw, validateEvent, buildEvent)
	case TypeVietQR:
		return run(raw, e.validateVietQR, e.buildVietQR)
	case TypeWeChatPay:
		return run(raw, e.validateWeChatPay, e.buildWeChatPay)
	case TypeMoMo:
		return run(raw, e.validateMoMo, e.buildMoMo)
	case TypeZalo:
		return run(raw, e.validateZalo, buildZalo)
	case TypeKakaoTalk:
		return run(raw, validateKakaoTalk, buildKakaoTalk)
	case TypeLine:
		return run(raw, validateLine, buildLine)
	case TypeWhatsApp:
		return run(raw, validateWhatsApp, buildWhatsApp)
	case TypeAppStore:
		return run(raw, validateAppStore, e.buildAppStore)
	case TypePDF:
		return run(raw, validatePDF, buildPDF)
	case TypeBusinessPage:
		return run(raw, validateBusinessPage, buildBusinessPage)
	default:
		// unreachable while ParseType and this switch list the same types
		return nil, errors.NewUnsupportedOptionError("type", fmt.Sprintf("unsupported QR type %q", typeID))
	}
}

// run is the validate-then-build pipeline shared by every codec. The builder
// is only reached with fields its validator accepted.
func run[F any](raw RawFields, validate func(RawFields) (F, error), build func(F) Payload) (*Payload, error) {
	fields, err := validate(raw)
	if err != nil {
		return nil, err
	}
	p := build(fields)
	return &p, nil
}
