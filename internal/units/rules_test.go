package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTable(t *testing.T) *RuleTable {
	t.Helper()
	table, err := DefaultTable()
	require.NoError(t, err)
	return table
}

func TestRuleKey(t *testing.T) {
	assert.Equal(t, "TBILIRUBIN", RuleKey("T.Bilirubin"))
	assert.Equal(t, "GLU", RuleKey("glu"))
	assert.Equal(t, "CA199", RuleKey("CA 19-9"))
	assert.Equal(t, "", RuleKey("---"))
}

func TestRuleTable_Convert(t *testing.T) {
	table := defaultTable(t)

	tests := []struct {
		name      string
		analyte   string
		fromUnit  string
		value     float64
		wantValue float64
		wantUnit  string
	}{
		{name: "calcium mmol to mg/dL", analyte: "Ca", fromUnit: "mmol/L", value: 2.5, wantValue: 10.02, wantUnit: "mg/dL"},
		{name: "glucose mmol to mg/dL", analyte: "GLU", fromUnit: "mmol/L", value: 5.5, wantValue: 99.088, wantUnit: "mg/dL"},
		{name: "creatinine umol to mg/dL", analyte: "CRE", fromUnit: "umol/L", value: 88.4, wantValue: 0.999, wantUnit: "mg/dL"},
		{name: "potassium monovalent identity", analyte: "K", fromUnit: "mEq/L", value: 4.0, wantValue: 4.0, wantUnit: "mmol/L"},
		{name: "bilirubin via analyte alias", analyte: "T.Bilirubin", fromUnit: "µmol/L", value: 17.1, wantValue: 1.0, wantUnit: "mg/dL"},
		{name: "unit alias spelling", analyte: "GLU", fromUnit: "mg/100mL", value: 100, wantValue: 100, wantUnit: "mg/dL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Convert(tt.analyte, tt.value, tt.fromUnit)
			require.True(t, got.Success, "conversion failed: %v", got.Err)
			assert.InDelta(t, tt.wantValue, got.ConvertedValue, 0.001)
			assert.Equal(t, tt.wantUnit, got.StandardUnit)
			assert.NotEmpty(t, got.Formula)
		})
	}
}

func TestRuleTable_Convert_AlreadyStandard(t *testing.T) {
	table := defaultTable(t)

	got := table.Convert("GLU", 95, "mg/dl")
	require.True(t, got.Success)
	assert.Equal(t, 95.0, got.ConvertedValue)
	assert.Equal(t, "already standard", got.Formula)
}

func TestRuleTable_Convert_Failures(t *testing.T) {
	table := defaultTable(t)

	t.Run("unknown analyte", func(t *testing.T) {
		got := table.Convert("UnknownAnalyte", 1, "mg/dL")
		assert.False(t, got.Success)
		require.Error(t, got.Err)
		assert.ErrorIs(t, got.Err, ErrNoRule)
	})

	t.Run("no conversion path", func(t *testing.T) {
		got := table.Convert("GLU", 1, "furlongs")
		assert.False(t, got.Success)
		require.Error(t, got.Err)
		assert.ErrorIs(t, got.Err, ErrNoPath)
	})
}

func TestRuleTable_RoundTrip(t *testing.T) {
	table := defaultTable(t)

	// Every analyte with a non-identity entry must round-trip within
	// rounding tolerance.
	for _, rule := range DefaultRules() {
		for _, e := range rule.Entries {
			if e.Multiplier == 1 {
				continue
			}
			value := 50.0
			fwd := table.Convert(rule.Analyte, value, e.Unit)
			require.True(t, fwd.Success, "%s %s forward failed", rule.Analyte, e.Unit)

			back := table.ReverseConvert(rule.Analyte, fwd.ConvertedValue, e.Unit)
			require.True(t, back.Success, "%s %s reverse failed", rule.Analyte, e.Unit)
			assert.InDelta(t, value, back.ConvertedValue, 0.05,
				"%s %s round trip drifted", rule.Analyte, e.Unit)
		}
	}
}

func TestNewRuleTable_Validation(t *testing.T) {
	t.Run("missing identity entry rejected", func(t *testing.T) {
		_, err := NewRuleTable([]Rule{{
			Analyte:      "X",
			StandardUnit: "mg/dL",
			Entries:      []Entry{{Unit: "mmol/L", Multiplier: 2}},
		}}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRule)
	})

	t.Run("alias to unknown analyte rejected", func(t *testing.T) {
		rules := []Rule{{
			Analyte:      "X",
			StandardUnit: "mg/dL",
			Entries:      []Entry{{Unit: "mg/dL", Multiplier: 1}},
		}}
		_, err := NewRuleTable(rules, map[string]string{"Y": "Z"})
		require.Error(t, err)
	})

	t.Run("duplicate analyte rejected", func(t *testing.T) {
		rule := Rule{
			Analyte:      "X",
			StandardUnit: "mg/dL",
			Entries:      []Entry{{Unit: "mg/dL", Multiplier: 1}},
		}
		_, err := NewRuleTable([]Rule{rule, rule}, nil)
		require.Error(t, err)
	})
}
