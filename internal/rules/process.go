package rules

import "log"

// Process runs one pass over an ordered rule element list and accumulates
// the processed results per category. Each element is handled by the pure
// processor for its kind; the one exception to one-element-one-result is
// AdjustModifier, which rewrites modifiers accumulated earlier in the same
// pass. Element order within a source is authored deliberately and is
// preserved throughout.
//
// A malformed or unrecognized element degrades to a no-op: it is logged and
// skipped, and the rest of the pass completes.
func Process(elements []Element, ctx *Context) *Aggregate {
	agg := NewAggregate()

	for _, el := range elements {
		switch e := el.(type) {
		case *FlatModifier:
			if m := processFlatModifier(e, ctx); m != nil {
				agg.Modifiers = append(agg.Modifiers, *m)
			}
		case *AdjustModifier:
			agg.Modifiers = adjustModifiers(agg.Modifiers, e, ctx)
		case *DamageDice:
			if r := processDamageDice(e, ctx); r != nil {
				agg.DamageDice = append(agg.DamageDice, *r)
			}
		case *BaseSpeed:
			if r := processBaseSpeed(e, ctx); r != nil {
				agg.Speeds = append(agg.Speeds, *r)
			}
		case *Sense:
			if r := processSense(e, ctx); r != nil {
				agg.Senses = append(agg.Senses, *r)
			}
		case *GrantItem:
			if r := processGrantItem(e, ctx); r != nil {
				agg.GrantedItems = append(agg.GrantedItems, *r)
			}
		case *ChoiceSet:
			if r := processChoiceSet(e, ctx); r != nil {
				agg.ChoicePrompts = append(agg.ChoicePrompts, *r)
			}
		case *ActiveEffectLike:
			if r := processActiveEffectLike(e, ctx); r != nil {
				agg.PropertyMods = append(agg.PropertyMods, *r)
			}
		case *RollOption:
			if r := processRollOption(e, ctx); r != nil {
				agg.RollOptions = append(agg.RollOptions, *r)
			}
		case *ToggleProperty:
			if r := processToggleProperty(e, ctx); r != nil {
				agg.Toggles = append(agg.Toggles, *r)
			}
		case *WeaponPotency:
			if r := processWeaponPotency(e, ctx); r != nil {
				agg.WeaponPotency = append(agg.WeaponPotency, *r)
				attack, damage := r.Modifiers()
				agg.Modifiers = append(agg.Modifiers, attack, damage)
			}
		case *Striking:
			if r := processStriking(e, ctx); r != nil {
				agg.Striking = append(agg.Striking, *r)
			}
		case *TempHP:
			if r := processTempHP(e, ctx); r != nil {
				agg.TempHP = append(agg.TempHP, *r)
			}
		case *FastHealing:
			if r := processFastHealing(e, ctx); r != nil {
				agg.FastHealing = append(agg.FastHealing, *r)
			}
		case *Resistance:
			if r := processResistance(e, ctx); r != nil {
				agg.Resistances = append(agg.Resistances, *r)
			}
		case *Weakness:
			if r := processWeakness(e, ctx); r != nil {
				agg.Weaknesses = append(agg.Weaknesses, *r)
			}
		case *Immunity:
			if r := processImmunity(e, ctx); r != nil {
				agg.Immunities = append(agg.Immunities, *r)
			}
		case *CreatureSize:
			if r := processCreatureSize(e, ctx); r != nil {
				agg.SizeChanges = append(agg.SizeChanges, *r)
			}
		case *ActorTraits:
			if r := processActorTraits(e, ctx); r != nil {
				agg.TraitChanges = append(agg.TraitChanges, *r)
			}
		case *Unrecognized:
			log.Printf("RuleEngine: skipping unrecognized rule element kind %q from %s", e.RawKind, ctx.Source)
		default:
			log.Printf("RuleEngine: no processor for rule element kind %q from %s", el.Kind(), ctx.Source)
		}
	}

	return agg
}
