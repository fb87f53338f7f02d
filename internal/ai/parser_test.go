package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprint/labresolve/internal/model"
)

func catalogFixture() []model.CanonicalItem {
	return []model.CanonicalItem{
		{ID: "1", Name: "CRE", DisplayName: "Creatinine"},
		{ID: "2", Name: "GLU", DisplayName: "Glucose"},
	}
}

func TestParseVerdict_Match(t *testing.T) {
	content := `{"match": "CRE", "confidence": 85, "reasoning": "Kreatinin is the German spelling"}`

	verdict, err := parseVerdict(content, catalogFixture())
	require.NoError(t, err)
	require.NotNil(t, verdict.Item)
	assert.Equal(t, "CRE", verdict.Item.Name)
	assert.Equal(t, 85.0, verdict.Confidence)
	assert.NotEmpty(t, verdict.Reasoning)
}

func TestParseVerdict_MatchOutsideCatalogRejected(t *testing.T) {
	content := `{"match": "SDMA", "confidence": 90, "reasoning": "made up"}`

	_, err := parseVerdict(content, catalogFixture())
	require.Error(t, err)
}

func TestParseVerdict_NewItem(t *testing.T) {
	content := `{"newItem": {"name": "SDMA", "displayName": "Symmetric Dimethylarginine", "defaultUnit": "µg/dL"}, "reasoning": "renal marker missing from catalog"}`

	verdict, err := parseVerdict(content, catalogFixture())
	require.NoError(t, err)
	assert.Nil(t, verdict.Item)
	require.NotNil(t, verdict.Draft)
	assert.Equal(t, "SDMA", verdict.Draft.Name)
	assert.Equal(t, "µg/dL", verdict.Draft.DefaultUnit)
	assert.Equal(t, model.ItemSourceAI, verdict.Draft.Source)
}

func TestParseVerdict_Declined(t *testing.T) {
	content := `{"reasoning": "this is a page header, not a lab test"}`

	verdict, err := parseVerdict(content, catalogFixture())
	require.NoError(t, err)
	assert.Nil(t, verdict.Item)
	assert.Nil(t, verdict.Draft)
	assert.NotEmpty(t, verdict.Reasoning)
}

func TestParseVerdict_MarkdownFence(t *testing.T) {
	content := "```json\n{\"match\": \"GLU\", \"confidence\": 92, \"reasoning\": \"abbreviation\"}\n```"

	verdict, err := parseVerdict(content, catalogFixture())
	require.NoError(t, err)
	require.NotNil(t, verdict.Item)
	assert.Equal(t, "GLU", verdict.Item.Name)
}

func TestParseVerdict_Garbage(t *testing.T) {
	_, err := parseVerdict("I think it's creatinine", catalogFixture())
	require.Error(t, err)
}
