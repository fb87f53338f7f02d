// Package units implements measurement-unit normalization and per-analyte
// unit conversion for lab results.
package units

import "strings"

// unitAliases groups raw unit spellings under one canonical token. Keys are
// the cleaned, lowercased forms produced by cleanUnit.
var unitAliases = buildUnitAliases(map[string][]string{
	"mg/dL":   {"mg/dl", "mg/100mL", "mg/100ml", "mg%", "mg %", "mgdl"},
	"g/dL":    {"g/dl", "g%", "g/100mL", "gdl"},
	"g/L":     {"g/l"},
	"mmol/L":  {"mmol/l", "mmoll", "mM"},
	"µmol/L":  {"umol/L", "umol/l", "μmol/L", "µmol/l", "umoll"},
	"nmol/L":  {"nmol/l"},
	"mEq/L":   {"meq/L", "meq/l", "mEq/l", "meql"},
	"U/L":     {"u/l", "IU/L", "iu/l", "ul", "units/L"},
	"µg/dL":   {"ug/dL", "ug/dl", "mcg/dL", "mcg/dl"},
	"µg/mL":   {"ug/mL", "ug/ml", "mcg/mL"},
	"ng/mL":   {"ng/ml"},
	"%":       {"percent", "pct"},
	"fL":      {"fl"},
	"pg":      {"pg"},
	"10^9/L":  {"x10^9/L", "10*9/L", "10e9/L", "K/uL", "K/µL", "10^3/uL", "x10^3/uL", "10^3/µL"},
	"10^12/L": {"x10^12/L", "10*12/L", "10e12/L", "M/uL", "M/µL", "10^6/uL", "x10^6/uL", "10^6/µL"},
	"mmHg":    {"mm Hg", "mmhg", "torr"},
	"sec":     {"s", "seconds", "second"},
})

func buildUnitAliases(groups map[string][]string) map[string]string {
	out := make(map[string]string, len(groups)*4)
	for canonical, raws := range groups {
		out[strings.ToLower(cleanUnit(canonical))] = canonical
		for _, raw := range raws {
			out[strings.ToLower(cleanUnit(raw))] = canonical
		}
	}
	return out
}

// cleanUnit trims the string and removes internal whitespace.
func cleanUnit(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

// NormalizeUnit maps a free-text unit spelling to its canonical token. On a
// dictionary miss the cleaned input is returned verbatim; this never fails.
func NormalizeUnit(raw string) string {
	cleaned := cleanUnit(raw)
	if canonical, ok := unitAliases[strings.ToLower(cleaned)]; ok {
		return canonical
	}
	return cleaned
}

// AreEquivalent reports whether two raw unit spellings normalize to the
// same token, compared case-insensitively.
func AreEquivalent(u1, u2 string) bool {
	return strings.EqualFold(NormalizeUnit(u1), NormalizeUnit(u2))
}
