package ai

import (
	"fmt"
	"strings"

	"github.com/pawprint/labresolve/internal/model"
)

// buildPrompt renders the disambiguation request: the raw name, the
// current catalog, and the expected JSON reply shape.
func buildPrompt(rawName string, items []model.CanonicalItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A veterinary blood-test report contains an item named %q that could not be matched automatically.\n\n", rawName)

	b.WriteString("The known catalog items are:\n")
	for _, item := range items {
		display := item.DisplayName
		if display == "" {
			display = item.Name
		}
		fmt.Fprintf(&b, "- %s (%s)\n", item.Name, display)
	}

	b.WriteString(`
If the item is one of the catalog entries under a different spelling or
abbreviation, reply with:
{"match": "<catalog item name>", "confidence": <0-100>, "reasoning": "<one sentence>"}

If it is a real lab test that is missing from the catalog, reply with:
{"newItem": {"name": "<short code>", "displayName": "<full name>", "defaultUnit": "<unit>"}, "reasoning": "<one sentence>"}

If it is not a lab test at all, reply with:
{"reasoning": "<one sentence>"}

Reply with exactly one JSON object and nothing else.`)

	return b.String()
}
