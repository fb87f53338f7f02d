package storage

import "github.com/pawprint/labresolve/internal/match"

type seedItem struct {
	id          string
	name        string
	normName    string
	displayName string
	examType    string
	organTags   string
	defaultUnit string
}

// seedItems returns the built-in global catalog. IDs are fixed so repeated
// migrations of fresh databases produce identical rows.
func seedItems() []seedItem {
	defs := []seedItem{
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0001", name: "GLU", displayName: "Glucose", examType: "biochemistry", organTags: "pancreas", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0002", name: "BUN", displayName: "Blood Urea Nitrogen", examType: "biochemistry", organTags: "kidney", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0003", name: "CRE", displayName: "Creatinine", examType: "biochemistry", organTags: "kidney", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0004", name: "TBIL", displayName: "Total Bilirubin", examType: "biochemistry", organTags: "liver", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0005", name: "ALT", displayName: "Alanine Aminotransferase", examType: "biochemistry", organTags: "liver", defaultUnit: "U/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0006", name: "AST", displayName: "Aspartate Aminotransferase", examType: "biochemistry", organTags: "liver,muscle", defaultUnit: "U/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0007", name: "ALP", displayName: "Alkaline Phosphatase", examType: "biochemistry", organTags: "liver,bone", defaultUnit: "U/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0008", name: "GGT", displayName: "Gamma-Glutamyl Transferase", examType: "biochemistry", organTags: "liver", defaultUnit: "U/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0009", name: "TP", displayName: "Total Protein", examType: "biochemistry", organTags: "liver", defaultUnit: "g/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d000a", name: "ALB", displayName: "Albumin", examType: "biochemistry", organTags: "liver,kidney", defaultUnit: "g/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d000b", name: "GLOB", displayName: "Globulin", examType: "biochemistry", organTags: "immune", defaultUnit: "g/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d000c", name: "CA", displayName: "Calcium", examType: "biochemistry", organTags: "bone,parathyroid", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d000d", name: "PHOS", displayName: "Phosphorus", examType: "biochemistry", organTags: "bone,kidney", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d000e", name: "NA", displayName: "Sodium", examType: "biochemistry", organTags: "electrolyte", defaultUnit: "mmol/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d000f", name: "K", displayName: "Potassium", examType: "biochemistry", organTags: "electrolyte", defaultUnit: "mmol/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0010", name: "CL", displayName: "Chloride", examType: "biochemistry", organTags: "electrolyte", defaultUnit: "mmol/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0011", name: "CHOL", displayName: "Cholesterol", examType: "biochemistry", organTags: "liver", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0012", name: "TG", displayName: "Triglycerides", examType: "biochemistry", organTags: "liver", defaultUnit: "mg/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0013", name: "WBC", displayName: "White Blood Cell Count", examType: "hematology", organTags: "immune", defaultUnit: "10^9/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0014", name: "RBC", displayName: "Red Blood Cell Count", examType: "hematology", organTags: "blood", defaultUnit: "10^12/L"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0015", name: "HGB", displayName: "Hemoglobin", examType: "hematology", organTags: "blood", defaultUnit: "g/dL"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0016", name: "HCT", displayName: "Hematocrit", examType: "hematology", organTags: "blood", defaultUnit: "%"},
		{id: "0b6ac123-9e5c-4f5e-8f6e-2f4a8c1d0017", name: "PLT", displayName: "Platelet Count", examType: "hematology", organTags: "blood", defaultUnit: "10^9/L"},
	}

	for i := range defs {
		defs[i].normName = match.Normalize(defs[i].name)
	}
	return defs
}
