package units

// DefaultRules returns the built-in conversion rule set for common
// veterinary blood-test analytes. Multipliers are per-analyte empirical
// constants (molar-mass dependent), so the same unit pair carries a
// different factor for each analyte.
func DefaultRules() []Rule {
	return []Rule{
		{
			Analyte:      "GLU",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "mmol/L", Multiplier: 18.016, Formula: "mg/dL = mmol/L × 18.016"},
			},
		},
		{
			Analyte:      "BUN",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "mmol/L", Multiplier: 2.801, Formula: "mg/dL = mmol/L × 2.801"},
			},
		},
		{
			Analyte:      "CRE",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "µmol/L", Multiplier: 0.0113, Formula: "mg/dL = µmol/L ÷ 88.4"},
			},
		},
		{
			Analyte:      "TBIL",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "µmol/L", Multiplier: 0.0585, Formula: "mg/dL = µmol/L ÷ 17.1"},
			},
		},
		{
			Analyte:      "CA",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "mmol/L", Multiplier: 4.008, Formula: "mg/dL = mmol/L × 4.008"},
				{Unit: "mEq/L", Multiplier: 2.004, Formula: "mg/dL = mEq/L × 2.004"},
			},
		},
		{
			Analyte:      "PHOS",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "mmol/L", Multiplier: 3.097, Formula: "mg/dL = mmol/L × 3.097"},
			},
		},
		{
			Analyte:      "MG",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "mmol/L", Multiplier: 2.431, Formula: "mg/dL = mmol/L × 2.431"},
				{Unit: "mEq/L", Multiplier: 1.215, Formula: "mg/dL = mEq/L × 1.215"},
			},
		},
		// Monovalent ions: mEq/L and mmol/L are numerically identical
		// (ionic valence 1), so the multiplier really is 1.
		{
			Analyte:      "NA",
			StandardUnit: "mmol/L",
			Entries: []Entry{
				{Unit: "mmol/L", Multiplier: 1},
				{Unit: "mEq/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "K",
			StandardUnit: "mmol/L",
			Entries: []Entry{
				{Unit: "mmol/L", Multiplier: 1},
				{Unit: "mEq/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "CL",
			StandardUnit: "mmol/L",
			Entries: []Entry{
				{Unit: "mmol/L", Multiplier: 1},
				{Unit: "mEq/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "CHOL",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "mmol/L", Multiplier: 38.67, Formula: "mg/dL = mmol/L × 38.67"},
			},
		},
		{
			Analyte:      "TG",
			StandardUnit: "mg/dL",
			Entries: []Entry{
				{Unit: "mg/dL", Multiplier: 1},
				{Unit: "mmol/L", Multiplier: 88.57, Formula: "mg/dL = mmol/L × 88.57"},
			},
		},
		{
			Analyte:      "TP",
			StandardUnit: "g/dL",
			Entries: []Entry{
				{Unit: "g/dL", Multiplier: 1},
				{Unit: "g/L", Multiplier: 0.1},
			},
		},
		{
			Analyte:      "ALB",
			StandardUnit: "g/dL",
			Entries: []Entry{
				{Unit: "g/dL", Multiplier: 1},
				{Unit: "g/L", Multiplier: 0.1},
			},
		},
		{
			Analyte:      "GLOB",
			StandardUnit: "g/dL",
			Entries: []Entry{
				{Unit: "g/dL", Multiplier: 1},
				{Unit: "g/L", Multiplier: 0.1},
			},
		},
		{
			Analyte:      "HGB",
			StandardUnit: "g/dL",
			Entries: []Entry{
				{Unit: "g/dL", Multiplier: 1},
				{Unit: "g/L", Multiplier: 0.1},
				{Unit: "mmol/L", Multiplier: 1.611, Formula: "g/dL = mmol/L × 1.611"},
			},
		},
		{
			Analyte:      "FE",
			StandardUnit: "µg/dL",
			Entries: []Entry{
				{Unit: "µg/dL", Multiplier: 1},
				{Unit: "µmol/L", Multiplier: 5.587, Formula: "µg/dL = µmol/L × 5.587"},
			},
		},
		{
			Analyte:      "ALT",
			StandardUnit: "U/L",
			Entries: []Entry{
				{Unit: "U/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "AST",
			StandardUnit: "U/L",
			Entries: []Entry{
				{Unit: "U/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "ALP",
			StandardUnit: "U/L",
			Entries: []Entry{
				{Unit: "U/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "GGT",
			StandardUnit: "U/L",
			Entries: []Entry{
				{Unit: "U/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "WBC",
			StandardUnit: "10^9/L",
			Entries: []Entry{
				{Unit: "10^9/L", Multiplier: 1},
			},
		},
		{
			Analyte:      "RBC",
			StandardUnit: "10^12/L",
			Entries: []Entry{
				{Unit: "10^12/L", Multiplier: 1},
			},
		},
	}
}

// DefaultAnalyteAliases returns the built-in analyte-name alias table.
// Keys and values are reduced through RuleKey at load time, so spelled-out
// forms like "T.Bilirubin" land on the owning rule.
func DefaultAnalyteAliases() map[string]string {
	return map[string]string{
		"TBILIRUBIN":          "TBIL",
		"TOTALBILIRUBIN":      "TBIL",
		"BILIRUBINTOTAL":      "TBIL",
		"GLUCOSE":             "GLU",
		"CREATININE":          "CRE",
		"CREA":                "CRE",
		"UREA":                "BUN",
		"BLOODUREANITROGEN":   "BUN",
		"CALCIUM":             "CA",
		"PHOSPHORUS":          "PHOS",
		"P":                   "PHOS",
		"MAGNESIUM":           "MG",
		"SODIUM":              "NA",
		"POTASSIUM":           "K",
		"CHLORIDE":            "CL",
		"CHOLESTEROL":         "CHOL",
		"TOTALCHOLESTEROL":    "CHOL",
		"TRIGLYCERIDES":       "TG",
		"TRIG":                "TG",
		"TOTALPROTEIN":        "TP",
		"ALBUMIN":             "ALB",
		"GLOBULIN":            "GLOB",
		"HEMOGLOBIN":          "HGB",
		"HB":                  "HGB",
		"IRON":                "FE",
		"SGPT":                "ALT",
		"SGOT":                "AST",
		"ALKP":                "ALP",
		"ALKALINEPHOSPHATASE": "ALP",
	}
}

// DefaultTable builds and validates the built-in rule table.
func DefaultTable() (*RuleTable, error) {
	return NewRuleTable(DefaultRules(), DefaultAnalyteAliases())
}
