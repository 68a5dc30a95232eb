package rules

import (
	"log"
	"strings"
)

// processResistance turns a Resistance element into a resistance result.
// A single element may tag several damage types, or the literal "all".
func processResistance(el *Resistance, ctx *Context) *ResistanceResult {
	if len(el.Types) == 0 {
		log.Printf("RuleEngine: Resistance from %s has no damage types, skipping", ctx.Source)
		return nil
	}
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: Resistance from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}

	return &ResistanceResult{
		Types:      lowerAll(el.Types),
		Value:      value,
		Exceptions: lowerAll(el.Exceptions),
		Source:     ctx.Source,
		Predicate:  el.Predicate,
	}
}

// processWeakness turns a Weakness element into a weakness result.
func processWeakness(el *Weakness, ctx *Context) *WeaknessResult {
	if len(el.Types) == 0 {
		log.Printf("RuleEngine: Weakness from %s has no damage types, skipping", ctx.Source)
		return nil
	}
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: Weakness from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}

	return &WeaknessResult{
		Types:     lowerAll(el.Types),
		Value:     value,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processImmunity turns an Immunity element into an immunity result.
func processImmunity(el *Immunity, ctx *Context) *ImmunityResult {
	if len(el.Types) == 0 {
		log.Printf("RuleEngine: Immunity from %s has no types, skipping", ctx.Source)
		return nil
	}
	return &ImmunityResult{
		Types:     lowerAll(el.Types),
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processTempHP turns a TempHP element into a temporary hit point result.
func processTempHP(el *TempHP, ctx *Context) *TempHPResult {
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: TempHP from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}
	return &TempHPResult{
		Value:     value,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processFastHealing turns a FastHealing element into a fast healing result.
func processFastHealing(el *FastHealing, ctx *Context) *FastHealingResult {
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: FastHealing from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}
	return &FastHealingResult{
		Value:         value,
		DeactivatedBy: lowerAll(el.DeactivatedBy),
		Source:        ctx.Source,
		Predicate:     el.Predicate,
	}
}

// physicalDamageTypes is the expansion of the "physical" grouping used by
// resistance and weakness matching.
var physicalDamageTypes = []string{"bludgeoning", "piercing", "slashing"}

// coversDamageType reports whether a resistance/weakness type list applies to
// the given damage type. "all" covers everything and "physical" covers the
// three physical damage types.
func coversDamageType(types []string, damageType string) bool {
	damageType = strings.ToLower(damageType)
	for _, t := range types {
		if t == "all" || t == damageType {
			return true
		}
		if t == "physical" {
			for _, phys := range physicalDamageTypes {
				if phys == damageType {
					return true
				}
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
