package codec

import (
	"regexp"
	"strings"

	"qr-engine/internal/common/errors"
)

const (
	appleAppBase      = "https://apps.apple.com/app/id"
	googlePlayBase    = "https://play.google.com/store/apps/details?id="
	maxPackageNameLen = 150
)

var androidPackagePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)

type appStoreFields struct {
	AppName string
	IOSID   *string
	Package *string
}

func validateAppStore(raw RawFields) (appStoreFields, error) {
	var f appStoreFields
	var err error

	if f.AppName, err = requiredText(raw, "appName", 100); err != nil {
		return f, err
	}

	ios, err := optionalString(raw, "iosAppId")
	if err != nil {
		return f, err
	}
	if ios != nil {
		id := *ios
		if len(id) > 2 && strings.EqualFold(id[:2], "id") {
			id = id[2:]
		}
		if !isDigits(id) {
			return f, errors.NewBadFormatError("iosAppId", "iosAppId must be numeric, optionally prefixed with id")
		}
		if len(id) < 6 || len(id) > 12 {
			return f, errors.NewOutOfRangeError("iosAppId", "iosAppId must have between 6 and 12 digits")
		}
		f.IOSID = &id
	}

	if f.Package, err = optionalString(raw, "androidPackageName"); err != nil {
		return f, err
	}
	if f.Package != nil {
		if len(*f.Package) > maxPackageNameLen {
			return f, errors.NewOutOfRangeError("androidPackageName", "androidPackageName must be at most 150 characters")
		}
		if !androidPackagePattern.MatchString(*f.Package) {
			return f, errors.NewBadFormatError("androidPackageName", "androidPackageName must look like com.example.app")
		}
	}

	if f.IOSID == nil && f.Package == nil {
		return f, errors.NewMissingFieldError("iosAppId", "iosAppId or androidPackageName is required")
	}
	return f, nil
}

func (e *Engine) buildAppStore(f appStoreFields) Payload {
	var canonical, target string
	switch {
	case f.IOSID != nil && f.Package != nil:
		target = "landing"
		canonical = e.opts.AppLandingURL +
			"?name=" + encodeComponent(f.AppName) +
			"&ios=" + *f.IOSID +
			"&android=" + encodeComponent(*f.Package)
	case f.IOSID != nil:
		target = "ios"
		canonical = appleAppBase + *f.IOSID
	default:
		target = "android"
		canonical = googlePlayBase + *f.Package
	}

	m := meta{"appName": f.AppName, "target": target}
	m.str("iosAppId", f.IOSID).str("androidPackageName", f.Package)
	return newPayload(TypeAppStore, canonical, m)
}
