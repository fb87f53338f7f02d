package model

// ConversionOutcome is the structured result of a unit conversion attempt.
// Failures are carried as data so a batch caller can keep the original
// value and unit instead of aborting.
type ConversionOutcome struct {
	Err            error
	StandardUnit   string
	Formula        string
	ConvertedValue float64
	Success        bool
}

// CatalogView is the per-lookup merged view of canonical items and aliases:
// the global layer plus an optional user-override layer. Views are built
// once per snapshot and never mutated afterwards; lookups treat them as
// read-only.
type CatalogView struct {
	itemsByNorm   map[string]*CanonicalItem
	aliasesByNorm map[string]*Alias
	items         []CanonicalItem
	aliases       []Alias
}

// NewCatalogView builds a merged view. overlay entries shadow global
// entries with the same normalized key; norm is the key function applied
// to item names and alias texts.
func NewCatalogView(global, overlay []CanonicalItem, globalAliases, overlayAliases []Alias, norm func(string) string) *CatalogView {
	v := &CatalogView{
		itemsByNorm:   make(map[string]*CanonicalItem, len(global)+len(overlay)),
		aliasesByNorm: make(map[string]*Alias, len(globalAliases)+len(overlayAliases)),
	}

	v.items = make([]CanonicalItem, 0, len(global)+len(overlay))
	v.items = append(v.items, global...)
	v.items = append(v.items, overlay...)
	for i := range v.items {
		key := norm(v.items[i].Name)
		if key == "" {
			continue
		}
		// Later entries win so user overrides shadow the global layer.
		v.itemsByNorm[key] = &v.items[i]
	}

	v.aliases = make([]Alias, 0, len(globalAliases)+len(overlayAliases))
	v.aliases = append(v.aliases, globalAliases...)
	v.aliases = append(v.aliases, overlayAliases...)
	for i := range v.aliases {
		key := norm(v.aliases[i].Text)
		if key == "" {
			continue
		}
		v.aliasesByNorm[key] = &v.aliases[i]
	}

	return v
}

// ItemByNormName returns the canonical item whose normalized name matches key.
func (v *CatalogView) ItemByNormName(key string) *CanonicalItem {
	return v.itemsByNorm[key]
}

// AliasByNormText returns the alias whose normalized text matches key.
func (v *CatalogView) AliasByNormText(key string) *Alias {
	return v.aliasesByNorm[key]
}

// ItemByID returns the item with the given identifier, or nil.
func (v *CatalogView) ItemByID(id string) *CanonicalItem {
	for i := range v.items {
		if v.items[i].ID == id {
			return &v.items[i]
		}
	}
	return nil
}

// Items returns all items in the view.
func (v *CatalogView) Items() []CanonicalItem {
	return v.items
}

// Aliases returns all aliases in the view.
func (v *CatalogView) Aliases() []Alias {
	return v.aliases
}

// FuzzyCandidates returns the union of canonical names and alias texts,
// the candidate set for the fuzzy tier.
func (v *CatalogView) FuzzyCandidates() []string {
	out := make([]string, 0, len(v.items)+len(v.aliases))
	for i := range v.items {
		out = append(out, v.items[i].Name)
	}
	for i := range v.aliases {
		out = append(out, v.aliases[i].Text)
	}
	return out
}
