package rules

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Snapshot is the live game state a predicate is evaluated against: the
// active roll options, effect names, traits, and the character level. It is
// cheap to rebuild whenever state changes and carries no behavior of its own.
type Snapshot struct {
	options map[string]bool
	effects map[string]bool
	traits  map[string]bool
	level   int
	hasLvl  bool
}

// NewSnapshot builds a snapshot with a known character level.
func NewSnapshot(level int, options, effects, traits []string) *Snapshot {
	s := &Snapshot{
		options: make(map[string]bool, len(options)),
		effects: make(map[string]bool, len(effects)),
		traits:  make(map[string]bool, len(traits)),
		level:   level,
		hasLvl:  true,
	}
	for _, o := range options {
		s.options[strings.ToLower(o)] = true
	}
	for _, e := range effects {
		s.effects[strings.ToLower(e)] = true
	}
	for _, t := range traits {
		s.traits[strings.ToLower(t)] = true
	}
	return s
}

// AddOption marks a roll option as active.
func (s *Snapshot) AddOption(option string) {
	if s.options == nil {
		s.options = make(map[string]bool)
	}
	s.options[strings.ToLower(option)] = true
}

// HasOption reports whether a roll option is active.
func (s *Snapshot) HasOption(option string) bool {
	return s != nil && s.options[strings.ToLower(option)]
}

// HasEffect reports whether an effect with the given name is active.
func (s *Snapshot) HasEffect(name string) bool {
	return s != nil && s.effects[strings.ToLower(name)]
}

// HasTrait reports whether the actor has the given trait.
func (s *Snapshot) HasTrait(trait string) bool {
	return s != nil && s.traits[strings.ToLower(trait)]
}

// Level returns the character level and whether one is known.
func (s *Snapshot) Level() (int, bool) {
	if s == nil {
		return 0, false
	}
	return s.level, s.hasLvl
}

// Statement is one node of the predicate language: a plain or structured
// string check, or a composite of nested statements. Exactly one field is
// set per statement.
type Statement struct {
	Option string
	And    []Statement
	Or     []Statement
	Not    *Statement
}

// Predicate is a list of statements combined with implicit AND. A nil or
// empty predicate is always satisfied.
type Predicate []Statement

// Satisfied evaluates the predicate against a snapshot. Evaluation is pure;
// predicates are carried on processed results and re-checked whenever the
// snapshot changes, never baked in at processing time.
func (p Predicate) Satisfied(snap *Snapshot) bool {
	for _, stmt := range p {
		if !stmt.holds(snap) {
			return false
		}
	}
	return true
}

func (s Statement) holds(snap *Snapshot) bool {
	switch {
	case len(s.And) > 0:
		for _, sub := range s.And {
			if !sub.holds(snap) {
				return false
			}
		}
		return true
	case len(s.Or) > 0:
		for _, sub := range s.Or {
			if sub.holds(snap) {
				return true
			}
		}
		return false
	case s.Not != nil:
		return !s.Not.holds(snap)
	default:
		return evalOption(s.Option, snap)
	}
}

// evalOption handles the string statement forms: a plain roll-option check,
// or the structured self:effect, self:trait, and self:level forms.
func evalOption(option string, snap *Snapshot) bool {
	if rest, ok := strings.CutPrefix(option, "self:effect:"); ok {
		return snap.HasEffect(rest)
	}
	if rest, ok := strings.CutPrefix(option, "self:trait:"); ok {
		return snap.HasTrait(rest)
	}
	if rest, ok := strings.CutPrefix(option, "self:level:"); ok {
		return evalLevel(rest, snap)
	}
	return snap.HasOption(option)
}

func evalLevel(expr string, snap *Snapshot) bool {
	cmp, numStr, found := strings.Cut(expr, ":")
	if !found {
		return false
	}
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return false
	}
	level, ok := snap.Level()
	if !ok {
		// Missing context never satisfies a comparison.
		return false
	}

	switch cmp {
	case "exact":
		return level == n
	case "gte":
		return level >= n
	case "lte":
		return level <= n
	case "gt":
		return level > n
	case "lt":
		return level < n
	default:
		return false
	}
}

// statementJSON mirrors the composite object form on the wire.
type statementJSON struct {
	And []Statement `json:"and,omitempty"`
	Or  []Statement `json:"or,omitempty"`
	Not *Statement  `json:"not,omitempty"`
}

// UnmarshalJSON accepts either a bare string or an and/or/not object.
func (s *Statement) UnmarshalJSON(data []byte) error {
	var option string
	if err := json.Unmarshal(data, &option); err == nil {
		*s = Statement{Option: option}
		return nil
	}

	var composite statementJSON
	if err := json.Unmarshal(data, &composite); err != nil {
		return err
	}
	*s = Statement{And: composite.And, Or: composite.Or, Not: composite.Not}
	return nil
}

// MarshalJSON writes the statement back in its wire shape.
func (s Statement) MarshalJSON() ([]byte, error) {
	if len(s.And) == 0 && len(s.Or) == 0 && s.Not == nil {
		return json.Marshal(s.Option)
	}
	return json.Marshal(statementJSON{And: s.And, Or: s.Or, Not: s.Not})
}
