package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nguyễn Văn Á", "Nguyen Van A"},
		{"Đặng Thị Đào", "Dang Thi Dao"},
		{"Trần Hưng Đạo", "Tran Hung Dao"},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripDiacritics(tt.in))
		})
	}
}

func TestBankAccountName(t *testing.T) {
	assert.Equal(t, "NGUYEN VAN A", bankAccountName("  nguyễn\tvăn   a "))

	// idempotent
	once := bankAccountName("Lê   Thị Hồng")
	assert.Equal(t, once, bankAccountName(once))
}

func TestNormalizersAreIdempotent(t *testing.T) {
	inputs := []string{"  (091) 234-5678 ", "ABC def", "\tx.y.z\t", "Đ-ư-ơ"}
	funcs := map[string]func(string) string{
		"stripSeparators": stripSeparators,
		"stripWhitespace": stripWhitespace,
		"collapseSpaces":  collapseSpaces,
		"upperCode":       upperCode,
		"foldIdentifier":  foldIdentifier,
		"stripDiacritics": stripDiacritics,
		"bankAccountName": bankAccountName,
	}
	for name, fn := range funcs {
		for _, in := range inputs {
			once := fn(in)
			assert.Equal(t, once, fn(once), "%s(%q)", name, in)
		}
	}
}

func TestCharacterClasses(t *testing.T) {
	assert.True(t, isDigits("0123"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("12a"))
	assert.False(t, isDigits("١٢")) // Arabic-Indic digits

	assert.True(t, isAlnum("abcXYZ09"))
	assert.False(t, isAlnum("ab_c"))
	assert.False(t, isAlnum(""))

	assert.True(t, isHex("deadBEEF09"))
	assert.False(t, isHex("xyz"))

	assert.Equal(t, 3, runeLen("đẹp"))
}
