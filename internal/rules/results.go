package rules

import "strings"

// Modifier is a named, typed numeric adjustment to one statistic.
type Modifier struct {
	Label     string
	Type      string
	Selector  string
	Value     int
	Source    string
	Predicate Predicate
	Enabled   bool
}

// DamageDiceResult adds damage dice to a damage roll.
type DamageDiceResult struct {
	Selector   string
	DiceNumber int
	DieSize    string
	DamageType string
	Label      string
	Source     string
	Predicate  Predicate
	Enabled    bool
}

// SpeedResult sets one movement speed. Same-type speeds do not stack; the
// highest active source wins.
type SpeedResult struct {
	Type      string
	Value     int
	Source    string
	Predicate Predicate
}

// SenseResult grants a sense.
type SenseResult struct {
	Sense     string
	Acuity    string
	Range     int
	Source    string
	Predicate Predicate
}

// GrantedItemResult records an item granted to the actor.
type GrantedItemResult struct {
	ItemID    string
	GrantID   string
	Source    string
	Predicate Predicate
}

// PromptOption is one selectable answer of a choice prompt.
type PromptOption struct {
	Value string
	Label string
}

// ChoicePrompt asks the user to resolve a selection. The flag key is stable
// across passes so recorded answers survive reprocessing.
type ChoicePrompt struct {
	Flag    string
	Prompt  string
	Count   int
	Options []PromptOption
	Source  string
}

// SelectionReader is the read side of the choice store.
type SelectionReader interface {
	Selection(flag string) ([]string, bool)
}

// IsComplete reports whether the store holds exactly the required number of
// selections for this prompt.
func (p *ChoicePrompt) IsComplete(store SelectionReader) bool {
	if store == nil {
		return false
	}
	values, ok := store.Selection(p.Flag)
	return ok && len(values) == p.Count
}

// PropertyModificationResult mutates an arbitrary actor property path.
type PropertyModificationResult struct {
	Path      string
	Mode      AdjustMode
	Value     int
	Source    string
	Predicate Predicate
}

// RollOptionResult contributes a flag to the active roll-option set.
type RollOptionResult struct {
	Domain     string
	Option     string
	Toggleable bool
	Enabled    bool
	Source     string
	Predicate  Predicate
}

// TogglePropertyResult exposes a user-flippable switch.
type TogglePropertyResult struct {
	Property  string
	Label     string
	Enabled   bool
	Source    string
	Predicate Predicate
}

// WeaponPotencyResult grants a weapon an attack and damage bonus.
type WeaponPotencyResult struct {
	Selector  string
	Value     int
	Label     string
	Source    string
	Predicate Predicate
}

// Modifiers derives the attack and damage modifiers for this potency. The
// damage selector is obtained from the attack selector by substitution.
func (r *WeaponPotencyResult) Modifiers() (attack, damage Modifier) {
	attack = Modifier{
		Label:     r.Label,
		Type:      "item",
		Selector:  r.Selector,
		Value:     r.Value,
		Source:    r.Source,
		Predicate: r.Predicate,
		Enabled:   true,
	}
	damage = attack
	damage.Selector = strings.ReplaceAll(r.Selector, "attack-roll", "damage")
	return attack, damage
}

// StrikingResult grants extra weapon damage dice. Same-selector sources do
// not stack; the highest wins.
type StrikingResult struct {
	Selector  string
	Value     int
	Label     string
	Source    string
	Predicate Predicate
}

// TempHPResult grants temporary hit points.
type TempHPResult struct {
	Value     int
	Source    string
	Predicate Predicate
}

// FastHealingResult grants per-turn healing.
type FastHealingResult struct {
	Value         int
	DeactivatedBy []string
	Source        string
	Predicate     Predicate
}

// ResistanceResult reduces incoming damage of the tagged types.
type ResistanceResult struct {
	Types      []string
	Value      int
	Exceptions []string
	Source     string
	Predicate  Predicate
}

// WeaknessResult increases incoming damage of the tagged types.
type WeaknessResult struct {
	Types     []string
	Value     int
	Source    string
	Predicate Predicate
}

// ImmunityResult negates incoming damage of the tagged types.
type ImmunityResult struct {
	Types     []string
	Source    string
	Predicate Predicate
}

// CreatureSizeResult changes the actor's size.
type CreatureSizeResult struct {
	Size      Size // absolute assignment; empty means relative
	Resize    int
	Min       Size
	Max       Size
	Source    string
	Predicate Predicate
}

// ActorTraitsResult adds and removes actor traits.
type ActorTraitsResult struct {
	Add       []string
	Remove    []string
	Source    string
	Predicate Predicate
}

// Aggregate accumulates processed results across the full list of rule
// elements from all of a character's active sources. It is derived state:
// rebuilt from scratch whenever the active-effect set changes, never
// incrementally mutated.
type Aggregate struct {
	Modifiers     []Modifier
	DamageDice    []DamageDiceResult
	Speeds        []SpeedResult
	Senses        []SenseResult
	GrantedItems  []GrantedItemResult
	ChoicePrompts []ChoicePrompt
	PropertyMods  []PropertyModificationResult
	RollOptions   []RollOptionResult
	Toggles       []TogglePropertyResult
	WeaponPotency []WeaponPotencyResult
	Striking      []StrikingResult
	TempHP        []TempHPResult
	FastHealing   []FastHealingResult
	Resistances   []ResistanceResult
	Weaknesses    []WeaknessResult
	Immunities    []ImmunityResult
	SizeChanges   []CreatureSizeResult
	TraitChanges  []ActorTraitsResult
}

// NewAggregate creates an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{}
}

// Merge concatenates the category buckets of every part in order. Relative
// order matters: predicate gating and modifier adjustment are both
// order-sensitive.
func Merge(parts ...*Aggregate) *Aggregate {
	merged := NewAggregate()
	for _, p := range parts {
		if p == nil {
			continue
		}
		merged.Modifiers = append(merged.Modifiers, p.Modifiers...)
		merged.DamageDice = append(merged.DamageDice, p.DamageDice...)
		merged.Speeds = append(merged.Speeds, p.Speeds...)
		merged.Senses = append(merged.Senses, p.Senses...)
		merged.GrantedItems = append(merged.GrantedItems, p.GrantedItems...)
		merged.ChoicePrompts = append(merged.ChoicePrompts, p.ChoicePrompts...)
		merged.PropertyMods = append(merged.PropertyMods, p.PropertyMods...)
		merged.RollOptions = append(merged.RollOptions, p.RollOptions...)
		merged.Toggles = append(merged.Toggles, p.Toggles...)
		merged.WeaponPotency = append(merged.WeaponPotency, p.WeaponPotency...)
		merged.Striking = append(merged.Striking, p.Striking...)
		merged.TempHP = append(merged.TempHP, p.TempHP...)
		merged.FastHealing = append(merged.FastHealing, p.FastHealing...)
		merged.Resistances = append(merged.Resistances, p.Resistances...)
		merged.Weaknesses = append(merged.Weaknesses, p.Weaknesses...)
		merged.Immunities = append(merged.Immunities, p.Immunities...)
		merged.SizeChanges = append(merged.SizeChanges, p.SizeChanges...)
		merged.TraitChanges = append(merged.TraitChanges, p.TraitChanges...)
	}
	return merged
}
