package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeElements(t *testing.T) {
	data := []byte(`[
		{"key": "FlatModifier", "selector": "speed", "type": "untyped", "value": 5, "label": "Fleet"},
		{"key": "Resistance", "types": ["fire"], "value": "level / 2"},
		{"key": "DamageDice", "diceNumber": 2, "dieSize": "d6", "damageType": "fire"},
		{"key": "CraftingEntry", "whatever": true},
		{"key": "ChoiceSet", "flag": "stance", "choices": [{"value": "crane", "predicate": ["self:trait:elf"]}]}
	]`)

	elements, err := DecodeElements(data)
	require.NoError(t, err)
	require.Len(t, elements, 5)

	flat, ok := elements[0].(*FlatModifier)
	require.True(t, ok)
	assert.Equal(t, "speed", flat.Selector)
	assert.Equal(t, "Fleet", flat.Label)

	resist, ok := elements[1].(*Resistance)
	require.True(t, ok)
	assert.Equal(t, []string{"fire"}, resist.Types)

	dice, ok := elements[2].(*DamageDice)
	require.True(t, ok)
	assert.Equal(t, "d6", dice.DieSize)

	unknown, ok := elements[3].(*Unrecognized)
	require.True(t, ok)
	assert.Equal(t, "CraftingEntry", unknown.RawKind)
	assert.NotEmpty(t, unknown.Raw)

	choice, ok := elements[4].(*ChoiceSet)
	require.True(t, ok)
	require.Len(t, choice.Options, 1)
	assert.Equal(t, Predicate{{Option: "self:trait:elf"}}, choice.Options[0].Predicate)
}

func TestDecodeElements_BadDocument(t *testing.T) {
	_, err := DecodeElements([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestDecodeElement_PredicateForms(t *testing.T) {
	raw := []byte(`{
		"key": "FlatModifier",
		"selector": "attack-roll",
		"value": 1,
		"predicate": ["raging", {"or": ["self:trait:orc", {"not": "fatigued"}]}]
	}`)

	el := DecodeElement(raw)
	flat, ok := el.(*FlatModifier)
	require.True(t, ok)
	require.Len(t, flat.Predicate, 2)
	assert.Equal(t, "raging", flat.Predicate[0].Option)
	assert.Len(t, flat.Predicate[1].Or, 2)
}

func TestDecodeElement_ValueShapes(t *testing.T) {
	t.Run("numeric value", func(t *testing.T) {
		el := DecodeElement([]byte(`{"key": "TempHP", "value": 10}`))
		hp, ok := el.(*TempHP)
		require.True(t, ok)

		value, resolved := hp.Value.Resolve(&Context{Level: 1})
		require.True(t, resolved)
		assert.Equal(t, 10, value)
	})

	t.Run("formula value", func(t *testing.T) {
		el := DecodeElement([]byte(`{"key": "TempHP", "value": "level * 2"}`))
		hp, ok := el.(*TempHP)
		require.True(t, ok)

		value, resolved := hp.Value.Resolve(&Context{Level: 6})
		require.True(t, resolved)
		assert.Equal(t, 12, value)
	})
}

func TestDecodeElement_AllKnownKinds(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind Kind
	}{
		{"flat modifier", `{"key":"FlatModifier","selector":"ac","value":1}`, KindFlatModifier},
		{"adjust modifier", `{"key":"AdjustModifier","slug":"rage","mode":"add","value":2}`, KindAdjustModifier},
		{"damage dice", `{"key":"DamageDice","dieSize":"d6"}`, KindDamageDice},
		{"base speed", `{"key":"BaseSpeed","selector":"fly","value":30}`, KindBaseSpeed},
		{"sense", `{"key":"Sense","selector":"darkvision"}`, KindSense},
		{"grant item", `{"key":"GrantItem","uuid":"Compendium.x"}`, KindGrantItem},
		{"choice set", `{"key":"ChoiceSet","flag":"f","choices":[{"value":"v"}]}`, KindChoiceSet},
		{"active effect like", `{"key":"ActiveEffectLike","path":"p","mode":"add","value":1}`, KindActiveEffectLike},
		{"roll option", `{"key":"RollOption","option":"panache"}`, KindRollOption},
		{"toggle property", `{"key":"ToggleProperty","property":"p"}`, KindToggleProperty},
		{"weapon potency", `{"key":"WeaponPotency","selector":"attack-roll","value":2}`, KindWeaponPotency},
		{"striking", `{"key":"Striking","selector":"damage","value":1}`, KindStriking},
		{"temp hp", `{"key":"TempHP","value":5}`, KindTempHP},
		{"fast healing", `{"key":"FastHealing","value":5}`, KindFastHealing},
		{"resistance", `{"key":"Resistance","types":["fire"],"value":5}`, KindResistance},
		{"weakness", `{"key":"Weakness","types":["cold iron"],"value":5}`, KindWeakness},
		{"immunity", `{"key":"Immunity","types":["poison"]}`, KindImmunity},
		{"creature size", `{"key":"CreatureSize","value":"large"}`, KindCreatureSize},
		{"actor traits", `{"key":"ActorTraits","add":["undead"]}`, KindActorTraits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := DecodeElement([]byte(tt.data))
			_, unrecognized := el.(*Unrecognized)
			assert.False(t, unrecognized)
			assert.Equal(t, tt.kind, el.Kind())
		})
	}
}

func TestDecodeElement_MalformedPayload(t *testing.T) {
	// Known kind, wrong field shape: degrades to Unrecognized instead of
	// failing.
	el := DecodeElement([]byte(`{"key": "Resistance", "types": "fire"}`))
	unknown, ok := el.(*Unrecognized)
	require.True(t, ok)
	assert.Equal(t, "Resistance", unknown.RawKind)
}
