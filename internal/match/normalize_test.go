package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase to uppercase", input: "cre", want: "CRE"},
		{name: "mixed case", input: "Creatinine", want: "CREATININE"},
		{name: "strips spaces", input: "T BIL", want: "TBIL"},
		{name: "strips dots", input: "T.Bilirubin", want: "TBILIRUBIN"},
		{name: "strips hyphens and underscores", input: "ALT_GPT-2", want: "ALTGPT"},
		{name: "strips parens and brackets", input: "Ca (total) [serum]", want: "CATOTALSERUM"},
		{name: "strips slash and star", input: "*BUN/CREA", want: "BUNCREA"},
		{name: "trailing instrument suffix", input: "GLU_V100", want: "GLUV"},
		{name: "trailing digits after letters", input: "CA19", want: "CA"},
		{name: "all digits preserved", input: "100", want: "100"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Cre", "T.Bilirubin", "GLU_V100", "ALB*", "wbc count 5"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", in)
	}
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("CRE"), Normalize("Cre"))
	assert.Equal(t, Normalize("creatinine"), Normalize("CREATININE"))
}
