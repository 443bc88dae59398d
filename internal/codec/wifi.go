package codec

import (
	"fmt"
	"strings"

	"qr-engine/internal/common/errors"
)

// WiFi authentication modes as written in the WIFI: payload.
const (
	wifiWPA    = "WPA"
	wifiWEP    = "WEP"
	wifiNoPass = "nopass"
)

type wifiFields struct {
	SSID       string
	Encryption string
	Password   *string
	Hidden     bool
}

func validateWiFi(raw RawFields) (wifiFields, error) {
	ssid, ok, err := raw.RawString("ssid")
	if err != nil {
		return wifiFields{}, err
	}
	if !ok {
		return wifiFields{}, errors.NewMissingFieldError("ssid", "ssid is required")
	}
	if len(ssid) > 32 {
		return wifiFields{}, errors.NewOutOfRangeError("ssid", "ssid must be at most 32 bytes")
	}

	enc := wifiWPA
	if v, ok, err := raw.String("encryption"); err != nil {
		return wifiFields{}, err
	} else if ok {
		switch strings.ToUpper(v) {
		case "WPA":
			enc = wifiWPA
		case "WEP":
			enc = wifiWEP
		case "NOPASS":
			enc = wifiNoPass
		default:
			return wifiFields{}, errors.NewUnsupportedOptionError("encryption",
				fmt.Sprintf("encryption %q is not supported; use WPA, WEP or nopass", v))
		}
	}

	password, hasPassword, err := raw.RawString("password")
	if err != nil {
		return wifiFields{}, err
	}
	f := wifiFields{SSID: ssid, Encryption: enc}

	switch enc {
	case wifiNoPass:
		if hasPassword {
			return wifiFields{}, errors.NewMutuallyExclusiveError("password", "password must be empty when encryption is nopass")
		}
	case wifiWPA:
		if !hasPassword {
			return wifiFields{}, errors.NewMissingFieldError("password", "password is required for WPA networks")
		}
		if n := len(password); n < 8 || n > 63 {
			return wifiFields{}, errors.NewOutOfRangeError("password", "WPA password must be between 8 and 63 characters")
		}
		f.Password = &password
	case wifiWEP:
		if !hasPassword {
			return wifiFields{}, errors.NewMissingFieldError("password", "password is required for WEP networks")
		}
		switch len(password) {
		case 5, 13:
		case 10, 26:
			if !isHex(password) {
				return wifiFields{}, errors.NewBadFormatError("password", "a 10 or 26 character WEP key must be hexadecimal")
			}
		default:
			return wifiFields{}, errors.NewOutOfRangeError("password", "WEP password must be 5 or 13 characters, or 10 or 26 hex digits")
		}
		f.Password = &password
	}

	hidden, _, err := raw.Bool("hidden")
	if err != nil {
		return wifiFields{}, err
	}
	f.Hidden = hidden

	return f, nil
}

func buildWiFi(f wifiFields) Payload {
	var b strings.Builder
	b.WriteString("WIFI:T:" + f.Encryption + ";")
	b.WriteString("S:" + escapeMeCard(f.SSID) + ";")
	if f.Password != nil {
		b.WriteString("P:" + escapeMeCard(*f.Password) + ";")
	}
	if f.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")

	m := meta{
		"ssid":       f.SSID,
		"encryption": f.Encryption,
		"hidden":     f.Hidden,
	}
	return newPayload(TypeWiFi, b.String(), m)
}
