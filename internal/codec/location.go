package codec

import (
	"fmt"
	"strconv"

	"qr-engine/internal/common/errors"
)

const coordinateDecimals = 6

type locationFields struct {
	Latitude  float64
	Longitude float64
	Label     *string
}

func requiredCoordinate(raw RawFields, key string, limit float64) (float64, error) {
	v, ok, err := raw.Number(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.NewMissingFieldError(key, fmt.Sprintf("%s is required", key))
	}
	if v < -limit || v > limit {
		return 0, errors.NewOutOfRangeError(key, fmt.Sprintf("%s must be between %g and %g", key, -limit, limit))
	}
	return roundTo(v, coordinateDecimals), nil
}

func validateLocation(raw RawFields) (locationFields, error) {
	lat, err := requiredCoordinate(raw, "latitude", 90)
	if err != nil {
		return locationFields{}, err
	}
	lng, err := requiredCoordinate(raw, "longitude", 180)
	if err != nil {
		return locationFields{}, err
	}
	label, err := optionalText(raw, "label", 100)
	if err != nil {
		return locationFields{}, err
	}
	return locationFields{Latitude: lat, Longitude: lng, Label: label}, nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func buildLocation(f locationFields) Payload {
	point := formatCoordinate(f.Latitude) + "," + formatCoordinate(f.Longitude)
	canonical := "geo:" + point
	if f.Label != nil {
		canonical += "?q=" + point + "(" + encodeComponent(*f.Label) + ")"
	}

	m := meta{"latitude": f.Latitude, "longitude": f.Longitude}.str("label", f.Label)
	return newPayload(TypeLocation, canonical, m)
}
