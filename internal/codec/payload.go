package codec

import (
	"crypto/sha256"
	"encoding/hex"
)

// Payload is a built QR payload: the exact string to encode plus
// display metadata derived from the validated fields.
type Payload struct {
	Type      Type                   `json:"type"`
	Canonical string                 `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// Fingerprint identifies the payload content. Equal canonical strings of the
// same type always share a fingerprint.
func (p *Payload) Fingerprint() string {
	sum := sha256.Sum256([]byte(string(p.Type) + "\n" + p.Canonical))
	return hex.EncodeToString(sum[:])
}

// meta accumulates metadata, skipping absent optional values.
type meta map[string]interface{}

func (m meta) str(key string, v *string) meta {
	if v != nil {
		m[key] = *v
	}
	return m
}

func (m meta) set(key string, v interface{}) meta {
	m[key] = v
	return m
}

func newPayload(t Type, canonical string, m meta) Payload {
	return Payload{Type: t, Canonical: canonical, Metadata: map[string]interface{}(m)}
}
