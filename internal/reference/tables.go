// Package reference holds the read-only bank, currency and platform tables
// the codec engine validates against.
package reference

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Bank is a VietQR participant bank.
type Bank struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	ShortName string   `json:"shortName"`
	BIN       string   `json:"bin"`
	Aliases   []string `json:"aliases,omitempty"`
}

// Currency carries the per-currency payment limits used by WeChat Pay.
type Currency struct {
	Code      string  `json:"code"`
	MaxAmount float64 `json:"maxAmount"`
	Decimals  int     `json:"decimals"`
	Locale    string  `json:"locale"`
}

// Platform is a messaging or wallet platform a payload deep-links into.
type Platform struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Host string `json:"host,omitempty"`
}

// Data is the raw material a loader produces. NewTables validates and indexes it.
type Data struct {
	Banks          []Bank     `json:"banks"`
	Currencies     []Currency `json:"currencies"`
	MobilePrefixes []string   `json:"mobilePrefixes"`
	Platforms      []Platform `json:"platforms"`
}

// Tables is the indexed, immutable reference set. All lookups are O(1) and
// case-insensitive on the code. A *Tables is safe for concurrent readers.
type Tables struct {
	banks      map[string]Bank
	aliases    map[string]string
	currencies map[string]Currency
	prefixes   map[string]struct{}
	platforms  map[string]Platform

	bankOrder []string
}

var (
	binPattern    = regexp.MustCompile(`^\d{6}$`)
	codePattern   = regexp.MustCompile(`^[A-Z0-9_]{2,16}$`)
	prefixPattern = regexp.MustCompile(`^0\d$`)
)

// NewTables validates data and builds the lookup indexes. Input slices are
// copied; later changes to data do not affect the returned Tables.
func NewTables(data Data) (*Tables, error) {
	t := &Tables{
		banks:      make(map[string]Bank, len(data.Banks)),
		aliases:    make(map[string]string),
		currencies: make(map[string]Currency, len(data.Currencies)),
		prefixes:   make(map[string]struct{}, len(data.MobilePrefixes)),
		platforms:  make(map[string]Platform, len(data.Platforms)),
	}

	if len(data.Banks) == 0 {
		return nil, fmt.Errorf("bank table is empty")
	}
	for _, b := range data.Banks {
		code := normalizeCode(b.Code)
		if !codePattern.MatchString(code) {
			return nil, fmt.Errorf("bank code %q is invalid", b.Code)
		}
		if _, dup := t.banks[code]; dup {
			return nil, fmt.Errorf("bank code %q is duplicated", code)
		}
		if !binPattern.MatchString(b.BIN) {
			return nil, fmt.Errorf("bank %s has invalid BIN %q", code, b.BIN)
		}
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("bank %s has no name", code)
		}

		aliases := make([]string, 0, len(b.Aliases))
		for _, a := range b.Aliases {
			aliases = append(aliases, normalizeCode(a))
		}
		b.Code = code
		b.Aliases = aliases
		if b.ShortName == "" {
			b.ShortName = code
		}
		t.banks[code] = b
		t.bankOrder = append(t.bankOrder, code)
	}

	// aliases are indexed after all codes so an alias never shadows a real code
	for _, code := range t.bankOrder {
		for _, alias := range t.banks[code].Aliases {
			if alias == "" || alias == code {
				continue
			}
			if _, isCode := t.banks[alias]; isCode {
				return nil, fmt.Errorf("alias %q of bank %s collides with a bank code", alias, code)
			}
			if owner, dup := t.aliases[alias]; dup && owner != code {
				return nil, fmt.Errorf("alias %q is claimed by both %s and %s", alias, owner, code)
			}
			t.aliases[alias] = code
		}
	}
	sort.Strings(t.bankOrder)

	for _, c := range data.Currencies {
		code := normalizeCode(c.Code)
		if len(code) != 3 {
			return nil, fmt.Errorf("currency code %q is invalid", c.Code)
		}
		if _, dup := t.currencies[code]; dup {
			return nil, fmt.Errorf("currency code %q is duplicated", code)
		}
		if c.MaxAmount <= 0 {
			return nil, fmt.Errorf("currency %s must have a positive limit", code)
		}
		if c.Decimals < 0 || c.Decimals > 4 {
			return nil, fmt.Errorf("currency %s has unsupported decimals %d", code, c.Decimals)
		}
		c.Code = code
		t.currencies[code] = c
	}

	for _, p := range data.MobilePrefixes {
		p = strings.TrimSpace(p)
		if !prefixPattern.MatchString(p) {
			return nil, fmt.Errorf("mobile prefix %q is invalid", p)
		}
		t.prefixes[p] = struct{}{}
	}

	for _, p := range data.Platforms {
		code := normalizeCode(p.Code)
		if code == "" || p.Name == "" {
			return nil, fmt.Errorf("platform %q needs a code and a name", p.Code)
		}
		p.Code = code
		t.platforms[code] = p
	}

	return t, nil
}

// Bank resolves a bank by code or alias.
func (t *Tables) Bank(code string) (Bank, bool) {
	code = normalizeCode(code)
	if b, ok := t.banks[code]; ok {
		return b, true
	}
	if canonical, ok := t.aliases[code]; ok {
		return t.banks[canonical], true
	}
	return Bank{}, false
}

// Currency looks up payment limits by ISO code.
func (t *Tables) Currency(code string) (Currency, bool) {
	c, ok := t.currencies[normalizeCode(code)]
	return c, ok
}

// IsMobilePrefix reports whether p (e.g. "09") is a Vietnamese mobile prefix.
func (t *Tables) IsMobilePrefix(p string) bool {
	_, ok := t.prefixes[p]
	return ok
}

// Platform looks up a platform record by code.
func (t *Tables) Platform(code string) (Platform, bool) {
	p, ok := t.platforms[normalizeCode(code)]
	return p, ok
}

// Banks returns all banks ordered by code.
func (t *Tables) Banks() []Bank {
	out := make([]Bank, 0, len(t.bankOrder))
	for _, code := range t.bankOrder {
		out = append(out, t.banks[code])
	}
	return out
}

// Stats summarizes table sizes for startup logging.
func (t *Tables) Stats() map[string]interface{} {
	return map[string]interface{}{
		"banks":          len(t.banks),
		"bankAliases":    len(t.aliases),
		"currencies":     len(t.currencies),
		"mobilePrefixes": len(t.prefixes),
		"platforms":      len(t.platforms),
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
