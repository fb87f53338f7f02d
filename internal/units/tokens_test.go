package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "canonical passes through", raw: "mg/dL", want: "mg/dL"},
		{name: "lowercase variant", raw: "mg/dl", want: "mg/dL"},
		{name: "per 100 mL", raw: "mg/100mL", want: "mg/dL"},
		{name: "percent style", raw: "mg %", want: "mg/dL"},
		{name: "internal whitespace removed", raw: " mmol / L ", want: "mmol/L"},
		{name: "ascii micro", raw: "umol/L", want: "µmol/L"},
		{name: "iu maps to U/L", raw: "IU/L", want: "U/L"},
		{name: "meq casing", raw: "MEQ/L", want: "mEq/L"},
		{name: "thousands per microliter", raw: "K/uL", want: "10^9/L"},
		{name: "unknown returned cleaned", raw: "  furlongs / fortnight ", want: "furlongs/fortnight"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeUnit(tt.raw))
		})
	}
}

func TestAreEquivalent(t *testing.T) {
	assert.True(t, AreEquivalent("mg/dL", "mg/100mL"))
	assert.True(t, AreEquivalent("mg %", "MG/DL"))
	assert.True(t, AreEquivalent("umol/L", "µmol/L"))
	assert.False(t, AreEquivalent("mg/dL", "mmol/L"))
	assert.True(t, AreEquivalent("widgets", "widgets"))
}
