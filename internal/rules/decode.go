package rules

import (
	"encoding/json"

	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/errors"
)

// The upstream content schema ships rule elements as JSON objects carrying a
// "key" discriminant. The contract is append-only: kinds this decoder does
// not know, and payloads it cannot parse, decode to Unrecognized so a pass
// over them still completes.

type flatModifierJSON struct {
	Selector  string     `json:"selector"`
	Type      string     `json:"type"`
	Value     Resolvable `json:"value"`
	Label     string     `json:"label"`
	Predicate Predicate  `json:"predicate"`
}

type adjustModifierJSON struct {
	Slug      string     `json:"slug"`
	Mode      AdjustMode `json:"mode"`
	Value     Resolvable `json:"value"`
	Predicate Predicate  `json:"predicate"`
}

type damageDiceJSON struct {
	Selector   string     `json:"selector"`
	DiceNumber Resolvable `json:"diceNumber"`
	DieSize    string     `json:"dieSize"`
	DamageType string     `json:"damageType"`
	Label      string     `json:"label"`
	Predicate  Predicate  `json:"predicate"`
}

type baseSpeedJSON struct {
	SpeedType string     `json:"selector"`
	Value     Resolvable `json:"value"`
	Predicate Predicate  `json:"predicate"`
}

type senseJSON struct {
	Sense     string     `json:"selector"`
	Acuity    string     `json:"acuity"`
	Range     Resolvable `json:"range"`
	Predicate Predicate  `json:"predicate"`
}

type grantItemJSON struct {
	ItemID    string    `json:"uuid"`
	Level     int       `json:"level"`
	Predicate Predicate `json:"predicate"`
}

type choiceOptionJSON struct {
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	Predicate Predicate `json:"predicate"`
}

type choiceSetJSON struct {
	Flag    string             `json:"flag"`
	Prompt  string             `json:"prompt"`
	Count   int                `json:"count"`
	Options []choiceOptionJSON `json:"choices"`
}

type activeEffectLikeJSON struct {
	Path      string     `json:"path"`
	Mode      AdjustMode `json:"mode"`
	Value     Resolvable `json:"value"`
	Predicate Predicate  `json:"predicate"`
}

type rollOptionJSON struct {
	Domain     string    `json:"domain"`
	Option     string    `json:"option"`
	Toggleable bool      `json:"toggleable"`
	Default    bool      `json:"default"`
	Predicate  Predicate `json:"predicate"`
}

type togglePropertyJSON struct {
	Property  string    `json:"property"`
	Label     string    `json:"label"`
	Default   bool      `json:"default"`
	Predicate Predicate `json:"predicate"`
}

type weaponPotencyJSON struct {
	Selector  string     `json:"selector"`
	Value     Resolvable `json:"value"`
	Label     string     `json:"label"`
	Predicate Predicate  `json:"predicate"`
}

type tempHPJSON struct {
	Value     Resolvable `json:"value"`
	Predicate Predicate  `json:"predicate"`
}

type fastHealingJSON struct {
	Value         Resolvable `json:"value"`
	DeactivatedBy []string   `json:"deactivatedBy"`
	Predicate     Predicate  `json:"predicate"`
}

type resistanceJSON struct {
	Types      []string   `json:"types"`
	Value      Resolvable `json:"value"`
	Exceptions []string   `json:"exceptions"`
	Predicate  Predicate  `json:"predicate"`
}

type immunityJSON struct {
	Types     []string  `json:"types"`
	Predicate Predicate `json:"predicate"`
}

type creatureSizeJSON struct {
	Value     string    `json:"value"`
	Resize    int       `json:"resize"`
	Min       string    `json:"minimumSize"`
	Max       string    `json:"maximumSize"`
	Predicate Predicate `json:"predicate"`
}

type actorTraitsJSON struct {
	Add       []string  `json:"add"`
	Remove    []string  `json:"remove"`
	Predicate Predicate `json:"predicate"`
}

// DecodeElements parses a JSON array of rule elements. Only a malformed
// top-level document is an error; individual elements degrade to
// Unrecognized.
func DecodeElements(data []byte) ([]Element, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.Wrap(err, "rule elements are not a JSON array")
	}

	elements := make([]Element, 0, len(raws))
	for _, raw := range raws {
		elements = append(elements, DecodeElement(raw))
	}
	return elements, nil
}

// DecodeElement parses a single rule element object. It never fails: an
// unknown kind or unparseable payload yields an Unrecognized element for the
// dispatcher to log and skip.
func DecodeElement(raw json.RawMessage) Element {
	var head struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return &Unrecognized{Raw: raw}
	}

	if el, ok := decodeKnown(Kind(head.Key), raw); ok {
		return el
	}
	return &Unrecognized{RawKind: head.Key, Raw: raw}
}

func decodeKnown(kind Kind, raw json.RawMessage) (Element, bool) {
	switch kind {
	case KindFlatModifier:
		var body flatModifierJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &FlatModifier{
			Selector:  body.Selector,
			Type:      body.Type,
			Value:     body.Value,
			Label:     body.Label,
			Predicate: body.Predicate,
		}, true
	case KindAdjustModifier:
		var body adjustModifierJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &AdjustModifier{
			Slug:      body.Slug,
			Mode:      body.Mode,
			Value:     body.Value,
			Predicate: body.Predicate,
		}, true
	case KindDamageDice:
		var body damageDiceJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &DamageDice{
			Selector:   body.Selector,
			DiceNumber: body.DiceNumber,
			DieSize:    body.DieSize,
			DamageType: body.DamageType,
			Label:      body.Label,
			Predicate:  body.Predicate,
		}, true
	case KindBaseSpeed:
		var body baseSpeedJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &BaseSpeed{SpeedType: body.SpeedType, Value: body.Value, Predicate: body.Predicate}, true
	case KindSense:
		var body senseJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &Sense{Sense: body.Sense, Acuity: body.Acuity, Range: body.Range, Predicate: body.Predicate}, true
	case KindGrantItem:
		var body grantItemJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &GrantItem{ItemID: body.ItemID, Level: body.Level, Predicate: body.Predicate}, true
	case KindChoiceSet:
		var body choiceSetJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		options := make([]ChoiceOption, 0, len(body.Options))
		for _, opt := range body.Options {
			options = append(options, ChoiceOption{Value: opt.Value, Label: opt.Label, Predicate: opt.Predicate})
		}
		return &ChoiceSet{Flag: body.Flag, Prompt: body.Prompt, Count: body.Count, Options: options}, true
	case KindActiveEffectLike:
		var body activeEffectLikeJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &ActiveEffectLike{Path: body.Path, Mode: body.Mode, Value: body.Value, Predicate: body.Predicate}, true
	case KindRollOption:
		var body rollOptionJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &RollOption{
			Domain:     body.Domain,
			Option:     body.Option,
			Toggleable: body.Toggleable,
			Default:    body.Default,
			Predicate:  body.Predicate,
		}, true
	case KindToggleProperty:
		var body togglePropertyJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &ToggleProperty{
			Property:  body.Property,
			Label:     body.Label,
			Default:   body.Default,
			Predicate: body.Predicate,
		}, true
	case KindWeaponPotency:
		var body weaponPotencyJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &WeaponPotency{Selector: body.Selector, Value: body.Value, Label: body.Label, Predicate: body.Predicate}, true
	case KindStriking:
		var body weaponPotencyJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &Striking{Selector: body.Selector, Value: body.Value, Label: body.Label, Predicate: body.Predicate}, true
	case KindTempHP:
		var body tempHPJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &TempHP{Value: body.Value, Predicate: body.Predicate}, true
	case KindFastHealing:
		var body fastHealingJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &FastHealing{Value: body.Value, DeactivatedBy: body.DeactivatedBy, Predicate: body.Predicate}, true
	case KindResistance:
		var body resistanceJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &Resistance{Types: body.Types, Value: body.Value, Exceptions: body.Exceptions, Predicate: body.Predicate}, true
	case KindWeakness:
		var body resistanceJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &Weakness{Types: body.Types, Value: body.Value, Predicate: body.Predicate}, true
	case KindImmunity:
		var body immunityJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &Immunity{Types: body.Types, Predicate: body.Predicate}, true
	case KindCreatureSize:
		var body creatureSizeJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &CreatureSize{
			Value:     Size(body.Value),
			Resize:    body.Resize,
			Min:       Size(body.Min),
			Max:       Size(body.Max),
			Predicate: body.Predicate,
		}, true
	case KindActorTraits:
		var body actorTraitsJSON
		if json.Unmarshal(raw, &body) != nil {
			return nil, false
		}
		return &ActorTraits{Add: body.Add, Remove: body.Remove, Predicate: body.Predicate}, true
	default:
		return nil, false
	}
}
