package units

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pawprint/labresolve/internal/model"
)

// Conversion errors.
var (
	// ErrNoRule indicates no conversion rule exists for the analyte.
	ErrNoRule = errors.New("no conversion rule for analyte")
	// ErrNoPath indicates the rule has no entry for the source unit.
	ErrNoPath = errors.New("no conversion path from unit")
	// ErrInvalidRule indicates a rule failed startup validation.
	ErrInvalidRule = errors.New("invalid conversion rule")
)

// Entry converts one source unit into the rule's standard unit by a fixed
// multiplier. Multipliers are analyte-specific empirical constants, held as
// data rather than derived at runtime.
type Entry struct {
	Unit       string
	Formula    string
	Multiplier float64
}

// Rule holds the standard unit and conversion entries for one analyte.
type Rule struct {
	Analyte      string
	StandardUnit string
	Entries      []Entry
}

// RuleTable is the validated set of conversion rules, keyed by normalized
// analyte token, plus an alias table letting multiple analyte spellings
// share one rule set.
type RuleTable struct {
	rules   map[string]Rule
	aliases map[string]string
}

// RuleKey reduces an analyte name to its rule lookup key: uppercase
// alphanumerics only.
func RuleKey(analyte string) string {
	var b strings.Builder
	b.Grow(len(analyte))
	for _, r := range strings.ToUpper(analyte) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewRuleTable validates rules and analyte aliases and builds the lookup
// table. Every rule must carry an identity entry (multiplier 1) for its own
// standard unit, so "already standard" is a normal case; every alias must
// point at a rule that exists.
func NewRuleTable(rules []Rule, aliases map[string]string) (*RuleTable, error) {
	t := &RuleTable{
		rules:   make(map[string]Rule, len(rules)),
		aliases: make(map[string]string, len(aliases)),
	}

	for _, rule := range rules {
		key := RuleKey(rule.Analyte)
		if key == "" {
			return nil, fmt.Errorf("%w: empty analyte name", ErrInvalidRule)
		}
		if _, dup := t.rules[key]; dup {
			return nil, fmt.Errorf("%w: duplicate analyte %q", ErrInvalidRule, rule.Analyte)
		}

		std := NormalizeUnit(rule.StandardUnit)
		hasIdentity := false
		for _, e := range rule.Entries {
			if NormalizeUnit(e.Unit) == std && e.Multiplier == 1 {
				hasIdentity = true
			}
			if e.Multiplier == 0 {
				return nil, fmt.Errorf("%w: %s has zero multiplier for %s", ErrInvalidRule, rule.Analyte, e.Unit)
			}
		}
		if !hasIdentity {
			return nil, fmt.Errorf("%w: %s missing identity entry for standard unit %s", ErrInvalidRule, rule.Analyte, rule.StandardUnit)
		}

		t.rules[key] = rule
	}

	for alias, owner := range aliases {
		aliasKey := RuleKey(alias)
		ownerKey := RuleKey(owner)
		if _, ok := t.rules[ownerKey]; !ok {
			return nil, fmt.Errorf("%w: alias %q points at unknown analyte %q", ErrInvalidRule, alias, owner)
		}
		t.aliases[aliasKey] = ownerKey
	}

	return t, nil
}

// RuleFor resolves an analyte name to its rule, consulting the analyte
// alias table when the name itself owns no rule.
func (t *RuleTable) RuleFor(analyte string) (Rule, bool) {
	key := RuleKey(analyte)
	if rule, ok := t.rules[key]; ok {
		return rule, true
	}
	if owner, ok := t.aliases[key]; ok {
		rule, found := t.rules[owner]
		return rule, found
	}
	return Rule{}, false
}

// Convert converts value from fromUnit into the analyte's standard unit.
// Failures are reported in the outcome, never panicked; the caller keeps
// the original value and unit on failure.
func (t *RuleTable) Convert(analyte string, value float64, fromUnit string) model.ConversionOutcome {
	rule, ok := t.RuleFor(analyte)
	if !ok {
		return model.ConversionOutcome{
			Err: fmt.Errorf("%w: %s", ErrNoRule, analyte),
		}
	}

	std := NormalizeUnit(rule.StandardUnit)
	from := NormalizeUnit(fromUnit)

	if strings.EqualFold(from, std) {
		return model.ConversionOutcome{
			Success:        true,
			ConvertedValue: value,
			StandardUnit:   rule.StandardUnit,
			Formula:        "already standard",
		}
	}

	for _, e := range rule.Entries {
		if strings.EqualFold(NormalizeUnit(e.Unit), from) {
			return model.ConversionOutcome{
				Success:        true,
				ConvertedValue: round3(value * e.Multiplier),
				StandardUnit:   rule.StandardUnit,
				Formula:        entryFormula(e, rule.StandardUnit),
			}
		}
	}

	return model.ConversionOutcome{
		Err: fmt.Errorf("%w: %s for %s", ErrNoPath, fromUnit, analyte),
	}
}

// ReverseConvert converts a standard-unit value back into toUnit, the
// symmetric inverse of Convert. It shares Convert's rule and alias
// resolution so round trips agree within rounding tolerance.
func (t *RuleTable) ReverseConvert(analyte string, value float64, toUnit string) model.ConversionOutcome {
	rule, ok := t.RuleFor(analyte)
	if !ok {
		return model.ConversionOutcome{
			Err: fmt.Errorf("%w: %s", ErrNoRule, analyte),
		}
	}

	std := NormalizeUnit(rule.StandardUnit)
	to := NormalizeUnit(toUnit)

	if strings.EqualFold(to, std) {
		return model.ConversionOutcome{
			Success:        true,
			ConvertedValue: value,
			StandardUnit:   rule.StandardUnit,
			Formula:        "already standard",
		}
	}

	for _, e := range rule.Entries {
		if strings.EqualFold(NormalizeUnit(e.Unit), to) {
			return model.ConversionOutcome{
				Success:        true,
				ConvertedValue: round3(value / e.Multiplier),
				StandardUnit:   NormalizeUnit(e.Unit),
				Formula:        reverseFormula(e, rule.StandardUnit),
			}
		}
	}

	return model.ConversionOutcome{
		Err: fmt.Errorf("%w: %s for %s", ErrNoPath, toUnit, analyte),
	}
}

// Analytes returns the rule-owning analyte tokens.
func (t *RuleTable) Analytes() []string {
	out := make([]string, 0, len(t.rules))
	for key := range t.rules {
		out = append(out, key)
	}
	return out
}

func entryFormula(e Entry, standardUnit string) string {
	if e.Formula != "" {
		return e.Formula
	}
	return fmt.Sprintf("%s = %s × %g", standardUnit, NormalizeUnit(e.Unit), e.Multiplier)
}

func reverseFormula(e Entry, standardUnit string) string {
	return fmt.Sprintf("%s = %s ÷ %g", NormalizeUnit(e.Unit), standardUnit, e.Multiplier)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
