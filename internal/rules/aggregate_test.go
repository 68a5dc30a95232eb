package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/choices"
)

func TestAggregate_EffectiveResistance(t *testing.T) {
	t.Run("max wins, never sums", func(t *testing.T) {
		agg := &Aggregate{Resistances: []ResistanceResult{
			{Types: []string{"fire"}, Value: 5, Source: "Ring"},
			{Types: []string{"all"}, Value: 3, Source: "Stance"},
		}}

		assert.Equal(t, 5, agg.EffectiveResistance("fire", "", nil))
	})

	t.Run("adding a lower source changes nothing", func(t *testing.T) {
		agg := &Aggregate{Resistances: []ResistanceResult{
			{Types: []string{"fire"}, Value: 5, Source: "Ring"},
		}}
		before := agg.EffectiveResistance("fire", "", nil)

		agg.Resistances = append(agg.Resistances, ResistanceResult{
			Types: []string{"fire"}, Value: 2, Source: "Lesser Ring",
		})
		assert.Equal(t, before, agg.EffectiveResistance("fire", "", nil))
	})

	t.Run("physical expands to the three physical types", func(t *testing.T) {
		agg := &Aggregate{Resistances: []ResistanceResult{
			{Types: []string{"physical"}, Value: 5, Source: "Rage"},
		}}

		assert.Equal(t, 5, agg.EffectiveResistance("slashing", "", nil))
		assert.Equal(t, 5, agg.EffectiveResistance("piercing", "", nil))
		assert.Equal(t, 5, agg.EffectiveResistance("bludgeoning", "", nil))
		assert.Equal(t, 0, agg.EffectiveResistance("fire", "", nil))
	})

	t.Run("exceptions bypass the entry", func(t *testing.T) {
		agg := &Aggregate{Resistances: []ResistanceResult{
			{Types: []string{"physical"}, Value: 10, Exceptions: []string{"silver"}, Source: "Werewolf Hide"},
			{Types: []string{"slashing"}, Value: 4, Source: "Armor"},
		}}

		assert.Equal(t, 10, agg.EffectiveResistance("slashing", "", nil))
		// A silver damage source skips the hide but not the armor.
		assert.Equal(t, 4, agg.EffectiveResistance("slashing", "silver", nil))
	})

	t.Run("inactive predicate excludes the source", func(t *testing.T) {
		agg := &Aggregate{Resistances: []ResistanceResult{
			{Types: []string{"fire"}, Value: 5, Predicate: Predicate{{Option: "raging"}}},
		}}

		assert.Equal(t, 0, agg.EffectiveResistance("fire", "", NewSnapshot(1, nil, nil, nil)))
		assert.Equal(t, 5, agg.EffectiveResistance("fire", "", NewSnapshot(1, []string{"raging"}, nil, nil)))
	})
}

func TestAggregate_EffectiveWeakness(t *testing.T) {
	agg := &Aggregate{Weaknesses: []WeaknessResult{
		{Types: []string{"cold iron"}, Value: 5, Source: "Fey Curse"},
		{Types: []string{"cold iron"}, Value: 3, Source: "Lesser Curse"},
	}}

	assert.Equal(t, 5, agg.EffectiveWeakness("cold iron", nil))
	assert.Equal(t, 0, agg.EffectiveWeakness("fire", nil))
}

func TestAggregate_IsImmune(t *testing.T) {
	agg := &Aggregate{Immunities: []ImmunityResult{
		{Types: []string{"poison", "disease"}, Source: "Construct Body"},
	}}

	assert.True(t, agg.IsImmune("poison", nil))
	assert.False(t, agg.IsImmune("fire", nil))
}

func TestAggregate_EffectiveTempHP(t *testing.T) {
	// Temporary hit points never stack.
	agg := &Aggregate{TempHP: []TempHPResult{
		{Value: 10, Source: "False Life"},
		{Value: 6, Source: "Battle Cry"},
	}}

	assert.Equal(t, 10, agg.EffectiveTempHP(nil))
}

func TestAggregate_Speeds(t *testing.T) {
	agg := &Aggregate{Speeds: []SpeedResult{
		{Type: "land", Value: 25, Source: "Ancestry"},
		{Type: "land", Value: 30, Source: "Longstrider"},
		{Type: "fly", Value: 40, Source: "Wings"},
	}}

	t.Run("max within each type independently", func(t *testing.T) {
		assert.Equal(t, 30, agg.SpeedFor("land", nil))
		assert.Equal(t, 40, agg.SpeedFor("fly", nil))
		assert.Equal(t, 0, agg.SpeedFor("swim", nil))
	})

	t.Run("effective speeds map", func(t *testing.T) {
		speeds := agg.EffectiveSpeeds(nil)
		assert.Equal(t, map[string]int{"land": 30, "fly": 40}, speeds)
	})
}

func TestAggregate_TotalFastHealing(t *testing.T) {
	agg := &Aggregate{FastHealing: []FastHealingResult{
		{Value: 5, Source: "Troll Blood"},
		{Value: 2, Source: "Healing Amulet"},
		{Value: 3, DeactivatedBy: []string{"fire", "acid"}, Source: "Regeneration"},
	}}

	t.Run("stacks additively", func(t *testing.T) {
		assert.Equal(t, 10, agg.TotalFastHealing(nil, nil))
	})

	t.Run("recent damage deactivates matching sources", func(t *testing.T) {
		assert.Equal(t, 7, agg.TotalFastHealing([]string{"fire"}, nil))
		assert.Equal(t, 10, agg.TotalFastHealing([]string{"cold"}, nil))
	})
}

func TestAggregate_PooledDamageDice(t *testing.T) {
	agg := &Aggregate{DamageDice: []DamageDiceResult{
		{DiceNumber: 1, DieSize: "d6", DamageType: "fire", Enabled: true},
		{DiceNumber: 2, DieSize: "d6", DamageType: "fire", Enabled: true},
		{DiceNumber: 1, DieSize: "d4", DamageType: "acid", Enabled: true},
	}}

	pools := agg.PooledDamageDice(nil)

	require.Len(t, pools, 2)
	assert.Equal(t, DicePool{DiceNumber: 3, DieSize: "d6", DamageType: "fire"}, pools[0])
	assert.Equal(t, DicePool{DiceNumber: 1, DieSize: "d4", DamageType: "acid"}, pools[1])
	assert.Equal(t, "3d6 fire + 1d4 acid", FormatDamageDice(pools))
}

func TestAggregate_PooledDamageDiceSkipsDisabled(t *testing.T) {
	agg := &Aggregate{DamageDice: []DamageDiceResult{
		{DiceNumber: 1, DieSize: "d6", DamageType: "fire", Enabled: true},
		{DiceNumber: 2, DieSize: "d6", DamageType: "fire", Enabled: false},
	}}

	pools := agg.PooledDamageDice(nil)
	require.Len(t, pools, 1)
	assert.Equal(t, 1, pools[0].DiceNumber)
}

func TestFormatDamageDice(t *testing.T) {
	assert.Equal(t, "", FormatDamageDice(nil))
	assert.Equal(t, "2d8", FormatDamageDice([]DicePool{{DiceNumber: 2, DieSize: "d8"}}))
}

func TestAggregate_BestPotencyAndStriking(t *testing.T) {
	agg := &Aggregate{
		WeaponPotency: []WeaponPotencyResult{
			{Selector: "attack-roll", Value: 1, Source: "Rune"},
			{Selector: "attack-roll", Value: 2, Source: "Greater Rune"},
		},
		Striking: []StrikingResult{
			{Selector: "strike-damage", Value: 2, Source: "Striking Rune"},
		},
	}

	assert.Equal(t, 2, agg.BestPotency("attack-roll", nil))
	assert.Equal(t, 0, agg.BestPotency("other", nil))
	assert.Equal(t, 2, agg.BestStriking("strike-damage", nil))
}

func TestAggregate_FinalTraits(t *testing.T) {
	agg := &Aggregate{TraitChanges: []ActorTraitsResult{
		{Add: []string{"undead"}, Remove: []string{"Human", "humanoid"}, Source: "Curse"},
		{Add: []string{"Humanoid"}, Source: "Blessing"},
	}}

	t.Run("changes apply left to right over base", func(t *testing.T) {
		traits := agg.FinalTraits([]string{"Human", "humanoid"}, nil)
		assert.Equal(t, []string{"humanoid", "undead"}, traits)
	})

	t.Run("mixed-case changes normalize without prior processing", func(t *testing.T) {
		// Consumer-built buckets need not be pre-lowered.
		raw := &Aggregate{TraitChanges: []ActorTraitsResult{
			{Add: []string{"Undead"}, Remove: []string{"HUMANOID"}, Source: "Curse"},
		}}
		assert.Equal(t, []string{"undead"}, raw.FinalTraits([]string{"Humanoid"}, nil))
	})

	t.Run("no changes returns sorted base", func(t *testing.T) {
		empty := &Aggregate{}
		assert.Equal(t, []string{"elf", "humanoid"}, empty.FinalTraits([]string{"Humanoid", "Elf"}, nil))
	})
}

func TestAggregate_FinalSize(t *testing.T) {
	t.Run("absolute assignment overrides", func(t *testing.T) {
		agg := &Aggregate{SizeChanges: []CreatureSizeResult{
			{Size: SizeLarge, Source: "Enlarge"},
		}}
		assert.Equal(t, SizeLarge, agg.FinalSize(SizeMedium, nil))
	})

	t.Run("relative steps apply in order", func(t *testing.T) {
		agg := &Aggregate{SizeChanges: []CreatureSizeResult{
			{Resize: 1, Source: "Enlarge"},
			{Resize: 1, Source: "Giant Form"},
		}}
		assert.Equal(t, SizeLarge, agg.FinalSize(SizeSmall, nil))
	})

	t.Run("max clamp applies after each step", func(t *testing.T) {
		agg := &Aggregate{SizeChanges: []CreatureSizeResult{
			{Resize: 2, Max: SizeLarge, Source: "Capped Growth"},
		}}
		assert.Equal(t, SizeLarge, agg.FinalSize(SizeMedium, nil))
	})
}

func TestAggregate_ActiveRollOptions(t *testing.T) {
	agg := &Aggregate{RollOptions: []RollOptionResult{
		{Option: "panache", Enabled: true},
		{Option: "rage", Enabled: false},
		{Option: "stance:mountain", Enabled: true, Predicate: Predicate{{Option: "self:level:gte:5"}}},
	}}

	options := agg.ActiveRollOptions(NewSnapshot(3, nil, nil, nil))
	assert.Equal(t, []string{"panache"}, options)

	options = agg.ActiveRollOptions(NewSnapshot(6, nil, nil, nil))
	assert.Equal(t, []string{"panache", "stance:mountain"}, options)
}

func TestAggregate_PendingChoices(t *testing.T) {
	agg := &Aggregate{ChoicePrompts: []ChoicePrompt{
		{Flag: "weaponGroup", Count: 1, Options: []PromptOption{{Value: "sword"}}},
		{Flag: "cantrips", Count: 2, Options: []PromptOption{{Value: "daze"}, {Value: "shield"}}},
	}}

	store := choices.NewStore()
	store.SetSelection("weaponGroup", "sword")
	store.SetSelection("cantrips", "daze") // only one of two required

	pending := agg.PendingChoices(store)
	require.Len(t, pending, 1)
	assert.Equal(t, "cantrips", pending[0].Flag)

	store.SetSelection("cantrips", "daze", "shield")
	assert.Empty(t, agg.PendingChoices(store))
}
