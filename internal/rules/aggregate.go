package rules

import (
	"fmt"
	"sort"
	"strings"
)

// The helpers below combine the per-category buckets into the character's
// effective values. They filter by predicate against the supplied snapshot
// on every call, so the same Aggregate can be re-queried cheaply as game
// state changes without reprocessing any rule elements.

// EffectiveResistance returns the effective resistance against one damage
// type, optionally from a named damage source. Resistance does not stack:
// the highest matching, non-excepted, active source wins.
func (a *Aggregate) EffectiveResistance(damageType, damageSource string, snap *Snapshot) int {
	best := 0
	for _, r := range a.Resistances {
		if !r.Predicate.Satisfied(snap) {
			continue
		}
		if !coversDamageType(r.Types, damageType) {
			continue
		}
		if damageSource != "" && coversDamageType(r.Exceptions, damageSource) {
			continue
		}
		if r.Value > best {
			best = r.Value
		}
	}
	return best
}

// EffectiveWeakness returns the effective weakness to one damage type: the
// highest matching active source.
func (a *Aggregate) EffectiveWeakness(damageType string, snap *Snapshot) int {
	best := 0
	for _, w := range a.Weaknesses {
		if !w.Predicate.Satisfied(snap) {
			continue
		}
		if !coversDamageType(w.Types, damageType) {
			continue
		}
		if w.Value > best {
			best = w.Value
		}
	}
	return best
}

// IsImmune reports whether any active immunity covers the given type.
func (a *Aggregate) IsImmune(damageType string, snap *Snapshot) bool {
	for _, im := range a.Immunities {
		if !im.Predicate.Satisfied(snap) {
			continue
		}
		if coversDamageType(im.Types, damageType) {
			return true
		}
	}
	return false
}

// EffectiveTempHP returns the best active temporary hit point grant.
// Temporary hit points never stack.
func (a *Aggregate) EffectiveTempHP(snap *Snapshot) int {
	best := 0
	for _, t := range a.TempHP {
		if !t.Predicate.Satisfied(snap) {
			continue
		}
		if t.Value > best {
			best = t.Value
		}
	}
	return best
}

// SpeedFor returns the effective speed of one movement type: the highest
// active source of that type. Zero means no such speed.
func (a *Aggregate) SpeedFor(speedType string, snap *Snapshot) int {
	speedType = strings.ToLower(speedType)
	best := 0
	for _, s := range a.Speeds {
		if s.Type != speedType {
			continue
		}
		if !s.Predicate.Satisfied(snap) {
			continue
		}
		if s.Value > best {
			best = s.Value
		}
	}
	return best
}

// EffectiveSpeeds returns every movement type with an active source, each at
// its own maximum, sorted by type for stable output.
func (a *Aggregate) EffectiveSpeeds(snap *Snapshot) map[string]int {
	speeds := make(map[string]int)
	for _, s := range a.Speeds {
		if !s.Predicate.Satisfied(snap) {
			continue
		}
		if s.Value > speeds[s.Type] {
			speeds[s.Type] = s.Value
		}
	}
	return speeds
}

// TotalFastHealing sums every active fast healing source. Sources
// deactivated by a recent damage type contribute nothing. Fast healing is
// the one defensive category that stacks additively.
func (a *Aggregate) TotalFastHealing(recentDamage []string, snap *Snapshot) int {
	total := 0
	for _, fh := range a.FastHealing {
		if !fh.Predicate.Satisfied(snap) {
			continue
		}
		deactivated := false
		for _, damageType := range recentDamage {
			if coversDamageType(fh.DeactivatedBy, damageType) {
				deactivated = true
				break
			}
		}
		if deactivated {
			continue
		}
		total += fh.Value
	}
	return total
}

// DicePool is one pooled damage dice entry keyed by die size and damage type.
type DicePool struct {
	DiceNumber int
	DieSize    string
	DamageType string
}

// PooledDamageDice sums active damage dice by (die size, damage type) key,
// preserving first-appearance order.
func (a *Aggregate) PooledDamageDice(snap *Snapshot) []DicePool {
	var pools []DicePool
	index := make(map[string]int)

	for _, d := range a.DamageDice {
		if !d.Enabled || !d.Predicate.Satisfied(snap) {
			continue
		}
		key := d.DieSize + "|" + d.DamageType
		if i, ok := index[key]; ok {
			pools[i].DiceNumber += d.DiceNumber
			continue
		}
		index[key] = len(pools)
		pools = append(pools, DicePool{
			DiceNumber: d.DiceNumber,
			DieSize:    d.DieSize,
			DamageType: d.DamageType,
		})
	}
	return pools
}

// FormatDamageDice renders pooled dice as "3d6 fire + 1d4 acid".
func FormatDamageDice(pools []DicePool) string {
	parts := make([]string, 0, len(pools))
	for _, p := range pools {
		part := fmt.Sprintf("%d%s", p.DiceNumber, p.DieSize)
		if p.DamageType != "" {
			part += " " + p.DamageType
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " + ")
}

// BestPotency returns the highest active weapon potency for a selector.
func (a *Aggregate) BestPotency(selector string, snap *Snapshot) int {
	best := 0
	for _, p := range a.WeaponPotency {
		if p.Selector != selector {
			continue
		}
		if !p.Predicate.Satisfied(snap) {
			continue
		}
		if p.Value > best {
			best = p.Value
		}
	}
	return best
}

// BestStriking returns the highest active striking value for a selector.
func (a *Aggregate) BestStriking(selector string, snap *Snapshot) int {
	best := 0
	for _, s := range a.Striking {
		if s.Selector != selector {
			continue
		}
		if !s.Predicate.Satisfied(snap) {
			continue
		}
		if s.Value > best {
			best = s.Value
		}
	}
	return best
}

// FinalTraits applies every active trait change to the base traits in source
// order: base union adds minus removes, left to right. The result is
// case-normalized and sorted.
func (a *Aggregate) FinalTraits(base []string, snap *Snapshot) []string {
	working := make(map[string]bool, len(base))
	for _, t := range base {
		working[strings.ToLower(t)] = true
	}

	for _, change := range a.TraitChanges {
		if !change.Predicate.Satisfied(snap) {
			continue
		}
		for _, t := range change.Add {
			working[strings.ToLower(t)] = true
		}
		for _, t := range change.Remove {
			delete(working, strings.ToLower(t))
		}
	}

	traits := make([]string, 0, len(working))
	for t := range working {
		traits = append(traits, t)
	}
	sort.Strings(traits)
	return traits
}

// FinalSize applies every active size change to the base size in source
// order. Absolute assignments override; relative resizes saturate at the
// ends of the size ordering; min/max clamps apply after each step.
func (a *Aggregate) FinalSize(base Size, snap *Snapshot) Size {
	size := Size(strings.ToLower(string(base)))
	for _, change := range a.SizeChanges {
		if !change.Predicate.Satisfied(snap) {
			continue
		}
		if change.Size != "" {
			size = change.Size
		} else {
			size = ResizeCreature(size, change.Resize)
		}
		size = clampSize(size, change.Min, change.Max)
	}
	return size
}

// ActiveRollOptions returns the enabled, predicate-satisfied roll options,
// ready to seed the next snapshot.
func (a *Aggregate) ActiveRollOptions(snap *Snapshot) []string {
	var options []string
	for _, ro := range a.RollOptions {
		if !ro.Enabled {
			continue
		}
		if !ro.Predicate.Satisfied(snap) {
			continue
		}
		options = append(options, ro.Option)
	}
	return options
}

// PendingChoices returns the prompts the user has not fully answered yet.
func (a *Aggregate) PendingChoices(store SelectionReader) []ChoicePrompt {
	var pending []ChoicePrompt
	for _, p := range a.ChoicePrompts {
		if !p.IsComplete(store) {
			pending = append(pending, p)
		}
	}
	return pending
}
