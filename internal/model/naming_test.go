package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Sistema Inmune", want: "sistema immune"},
		{in: "sistema immune", want: "sistema immune"},
		{in: "  SISTEMA   INMÚNE ", want: "sistema immune"},
		{in: "Vitaminas y Minerales", want: "vitaminas y minerales"},
		{in: "Energía", want: "energia"},
		{in: "Piña", want: "pina"},
		{in: "Omega 3", want: "omega 3"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, NormalizeName(tt.in), "NormalizeName(%q)", tt.in)
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sistema-inmune", Slugify("Sistema Inmune"))
	assert.Equal(t, "energia-vitalidad", Slugify(" Energía & Vitalidad! "))
	assert.Equal(t, "omega-3", Slugify("Omega--3"))
	assert.Equal(t, "", Slugify("¡!"))
}

func TestCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CAT-0007", FormatCode("CAT", 7))
	assert.Equal(t, "TAG-12345", FormatCode("TAG", 12345))

	n, ok := CodeSuffix("TPR-0042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = CodeSuffix("TPR-")
	assert.False(t, ok)

	assert.Equal(t, int64(12), MaxCodeSuffix([]string{"CAT-0003", "CAT-0012", "legacy", "CAT-0009"}))
	assert.Equal(t, int64(0), MaxCodeSuffix(nil))
}
