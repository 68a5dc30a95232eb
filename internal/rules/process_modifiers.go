package rules

import (
	"log"
	"strings"
)

// processFlatModifier turns a FlatModifier element into a Modifier result.
// Returns nil when the selector is missing or the value cannot be resolved.
func processFlatModifier(el *FlatModifier, ctx *Context) *Modifier {
	if el.Selector == "" {
		log.Printf("RuleEngine: FlatModifier from %s has no selector, skipping", ctx.Source)
		return nil
	}
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: FlatModifier from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}

	label := el.Label
	if label == "" {
		label = ctx.Source
	}
	bonusType := el.Type
	if bonusType == "" {
		bonusType = "untyped"
	}

	return &Modifier{
		Label:     label,
		Type:      bonusType,
		Selector:  el.Selector,
		Value:     value,
		Source:    ctx.Source,
		Predicate: el.Predicate,
		Enabled:   true,
	}
}

// adjustModifiers applies an AdjustModifier element to the modifiers
// accumulated so far in the current pass. Matching modifiers are replaced
// with adjusted copies; everything else is passed through untouched. When
// nothing matches the input slice is returned as-is.
func adjustModifiers(mods []Modifier, el *AdjustModifier, ctx *Context) []Modifier {
	amount, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: AdjustModifier from %s has unresolvable value, skipping", ctx.Source)
		return mods
	}

	slug := strings.ToLower(el.Slug)
	adjusted := false
	out := make([]Modifier, len(mods))
	for i, mod := range mods {
		if slug != "" && !modifierMatchesSlug(mod, slug) {
			out[i] = mod
			continue
		}
		out[i] = adjustModifier(mod, el.Mode, amount)
		adjusted = true
	}
	if !adjusted {
		return mods
	}
	return out
}

// modifierMatchesSlug checks the slug against label and source,
// case-insensitively, as a substring.
func modifierMatchesSlug(mod Modifier, slug string) bool {
	return strings.Contains(strings.ToLower(mod.Label), slug) ||
		strings.Contains(strings.ToLower(mod.Source), slug)
}

func adjustModifier(mod Modifier, mode AdjustMode, amount int) Modifier {
	switch mode {
	case ModeAdd:
		mod.Value += amount
	case ModeMultiply:
		mod.Value *= amount
	case ModeOverride:
		mod.Value = amount
	case ModeUpgrade:
		if amount > mod.Value {
			mod.Value = amount
		}
	case ModeDowngrade:
		if amount < mod.Value {
			mod.Value = amount
		}
	default:
		return mod
	}
	mod.Source += " (adjusted)"
	return mod
}

// processWeaponPotency turns a WeaponPotency element into a potency result.
// The potency value is clamped to the 1-3 range of the ruleset.
func processWeaponPotency(el *WeaponPotency, ctx *Context) *WeaponPotencyResult {
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: WeaponPotency from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}
	if value < 1 {
		value = 1
	}
	if value > 3 {
		value = 3
	}

	selector := el.Selector
	if selector == "" {
		selector = "attack-roll"
	}
	label := el.Label
	if label == "" {
		label = ctx.Source
	}

	return &WeaponPotencyResult{
		Selector:  selector,
		Value:     value,
		Label:     label,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processStriking turns a Striking element into a striking result, clamped
// to the 1-3 range.
func processStriking(el *Striking, ctx *Context) *StrikingResult {
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: Striking from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}
	if value < 1 {
		value = 1
	}
	if value > 3 {
		value = 3
	}

	label := el.Label
	if label == "" {
		label = ctx.Source
	}

	return &StrikingResult{
		Selector:  el.Selector,
		Value:     value,
		Label:     label,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processDamageDice turns a DamageDice element into a damage dice result.
func processDamageDice(el *DamageDice, ctx *Context) *DamageDiceResult {
	if el.DieSize == "" {
		log.Printf("RuleEngine: DamageDice from %s has no die size, skipping", ctx.Source)
		return nil
	}
	diceNumber := 1
	if !el.DiceNumber.IsZero() {
		n, ok := el.DiceNumber.Resolve(ctx)
		if !ok {
			log.Printf("RuleEngine: DamageDice from %s has unresolvable dice number, skipping", ctx.Source)
			return nil
		}
		diceNumber = n
	}

	label := el.Label
	if label == "" {
		label = ctx.Source
	}

	return &DamageDiceResult{
		Selector:   el.Selector,
		DiceNumber: diceNumber,
		DieSize:    strings.ToLower(el.DieSize),
		DamageType: strings.ToLower(el.DamageType),
		Label:      label,
		Source:     ctx.Source,
		Predicate:  el.Predicate,
		Enabled:    true,
	}
}
