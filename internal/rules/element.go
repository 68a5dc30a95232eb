package rules

import "encoding/json"

// Kind identifies the instruction carried by a rule element.
type Kind string

const (
	KindFlatModifier     Kind = "FlatModifier"
	KindAdjustModifier   Kind = "AdjustModifier"
	KindDamageDice       Kind = "DamageDice"
	KindBaseSpeed        Kind = "BaseSpeed"
	KindSense            Kind = "Sense"
	KindGrantItem        Kind = "GrantItem"
	KindChoiceSet        Kind = "ChoiceSet"
	KindActiveEffectLike Kind = "ActiveEffectLike"
	KindRollOption       Kind = "RollOption"
	KindToggleProperty   Kind = "ToggleProperty"
	KindWeaponPotency    Kind = "WeaponPotency"
	KindStriking         Kind = "Striking"
	KindTempHP           Kind = "TempHP"
	KindFastHealing      Kind = "FastHealing"
	KindResistance       Kind = "Resistance"
	KindWeakness         Kind = "Weakness"
	KindImmunity         Kind = "Immunity"
	KindCreatureSize     Kind = "CreatureSize"
	KindActorTraits      Kind = "ActorTraits"
)

// AdjustMode defines how an adjustment combines with an existing value.
type AdjustMode string

const (
	ModeAdd       AdjustMode = "add"
	ModeMultiply  AdjustMode = "multiply"
	ModeOverride  AdjustMode = "override"
	ModeUpgrade   AdjustMode = "upgrade"   // take the higher value
	ModeDowngrade AdjustMode = "downgrade" // take the lower value
)

// Element is a single declarative rule instruction carried by a feat, spell,
// item, or condition. The set of implementations is closed: one struct per
// supported kind plus Unrecognized for anything the decoder does not know.
type Element interface {
	Kind() Kind
	element()
}

// FlatModifier grants a typed numeric bonus or penalty to one statistic.
type FlatModifier struct {
	Selector  string
	Type      string // bonus type: untyped, item, status, circumstance, proficiency
	Value     Resolvable
	Label     string
	Predicate Predicate
}

// AdjustModifier rewrites modifiers produced earlier in the same pass.
type AdjustModifier struct {
	Slug      string // optional; case-insensitive substring match on label/source
	Mode      AdjustMode
	Value     Resolvable
	Predicate Predicate
}

// DamageDice adds damage dice to a damage roll.
type DamageDice struct {
	Selector   string
	DiceNumber Resolvable
	DieSize    string // "d4", "d6", ...
	DamageType string
	Label      string
	Predicate  Predicate
}

// BaseSpeed sets a movement speed of one movement type.
type BaseSpeed struct {
	SpeedType string // land, fly, swim, climb, burrow
	Value     Resolvable
	Predicate Predicate
}

// Sense grants a sense such as darkvision or tremorsense.
type Sense struct {
	Sense     string
	Acuity    string // precise, imprecise, vague
	Range     Resolvable
	Predicate Predicate
}

// GrantItem grants another item to the actor, optionally gated by level.
type GrantItem struct {
	ItemID    string
	Level     int // 0 means no level gate
	Predicate Predicate
}

// ChoiceOption is one candidate answer within a ChoiceSet.
type ChoiceOption struct {
	Value     string
	Label     string
	Predicate Predicate
}

// ChoiceSet asks the user to pick from a list of options; the answer is
// stored under a stable flag key for later passes to consume.
type ChoiceSet struct {
	Flag    string // optional; derived from the source name when empty
	Prompt  string
	Count   int // required selection count; 0 means 1
	Options []ChoiceOption
}

// ActiveEffectLike mutates an arbitrary actor property path.
type ActiveEffectLike struct {
	Path      string
	Mode      AdjustMode
	Value     Resolvable
	Predicate Predicate
}

// RollOption contributes a string flag to the active roll-option set.
type RollOption struct {
	Domain     string // defaults to "all"
	Option     string
	Toggleable bool
	Default    bool
	Predicate  Predicate
}

// ToggleProperty exposes a user-flippable boolean switch.
type ToggleProperty struct {
	Property  string
	Label     string
	Default   bool
	Predicate Predicate
}

// WeaponPotency grants an attack and damage bonus to a weapon.
type WeaponPotency struct {
	Selector  string
	Value     Resolvable
	Label     string
	Predicate Predicate
}

// Striking grants extra weapon damage dice.
type Striking struct {
	Selector  string
	Value     Resolvable
	Label     string
	Predicate Predicate
}

// TempHP grants temporary hit points.
type TempHP struct {
	Value     Resolvable
	Predicate Predicate
}

// FastHealing grants hit point regeneration each turn.
type FastHealing struct {
	Value         Resolvable
	DeactivatedBy []string // damage types that suppress the healing
	Predicate     Predicate
}

// Resistance reduces incoming damage of the listed types.
type Resistance struct {
	Types      []string // damage types, or the literal "all"
	Value      Resolvable
	Exceptions []string // damage sources that bypass this resistance
	Predicate  Predicate
}

// Weakness increases incoming damage of the listed types.
type Weakness struct {
	Types     []string
	Value     Resolvable
	Predicate Predicate
}

// Immunity negates incoming damage or effects of the listed types.
type Immunity struct {
	Types     []string
	Predicate Predicate
}

// CreatureSize changes the actor's size, absolutely or by relative steps.
type CreatureSize struct {
	Value     Size // absolute size; empty means relative
	Resize    int  // relative steps, clamped to the size ordering
	Min       Size
	Max       Size
	Predicate Predicate
}

// ActorTraits adds and removes traits on the actor.
type ActorTraits struct {
	Add       []string
	Remove    []string
	Predicate Predicate
}

// Unrecognized carries a rule element whose kind the decoder does not know.
// The dispatcher skips it; keeping the raw payload preserves the upstream
// append-only contract when the data is re-serialized.
type Unrecognized struct {
	RawKind string
	Raw     json.RawMessage
}

func (*FlatModifier) Kind() Kind     { return KindFlatModifier }
func (*AdjustModifier) Kind() Kind   { return KindAdjustModifier }
func (*DamageDice) Kind() Kind       { return KindDamageDice }
func (*BaseSpeed) Kind() Kind        { return KindBaseSpeed }
func (*Sense) Kind() Kind            { return KindSense }
func (*GrantItem) Kind() Kind        { return KindGrantItem }
func (*ChoiceSet) Kind() Kind        { return KindChoiceSet }
func (*ActiveEffectLike) Kind() Kind { return KindActiveEffectLike }
func (*RollOption) Kind() Kind       { return KindRollOption }
func (*ToggleProperty) Kind() Kind   { return KindToggleProperty }
func (*WeaponPotency) Kind() Kind    { return KindWeaponPotency }
func (*Striking) Kind() Kind         { return KindStriking }
func (*TempHP) Kind() Kind           { return KindTempHP }
func (*FastHealing) Kind() Kind      { return KindFastHealing }
func (*Resistance) Kind() Kind       { return KindResistance }
func (*Weakness) Kind() Kind         { return KindWeakness }
func (*Immunity) Kind() Kind         { return KindImmunity }
func (*CreatureSize) Kind() Kind     { return KindCreatureSize }
func (*ActorTraits) Kind() Kind      { return KindActorTraits }
func (u *Unrecognized) Kind() Kind   { return Kind(u.RawKind) }

func (*FlatModifier) element()     {}
func (*AdjustModifier) element()   {}
func (*DamageDice) element()       {}
func (*BaseSpeed) element()        {}
func (*Sense) element()            {}
func (*GrantItem) element()        {}
func (*ChoiceSet) element()        {}
func (*ActiveEffectLike) element() {}
func (*RollOption) element()       {}
func (*ToggleProperty) element()   {}
func (*WeaponPotency) element()    {}
func (*Striking) element()         {}
func (*TempHP) element()           {}
func (*FastHealing) element()      {}
func (*Resistance) element()       {}
func (*Weakness) element()         {}
func (*Immunity) element()         {}
func (*CreatureSize) element()     {}
func (*ActorTraits) element()      {}
func (*Unrecognized) element()     {}
