package rules

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Resolvable is a rule element operand: either a literal number or a small
// formula string evaluated against the character at processing time.
type Resolvable struct {
	number  float64
	formula string
	isNum   bool
}

// NewValue creates a literal numeric operand.
func NewValue(n float64) Resolvable {
	return Resolvable{number: n, isNum: true}
}

// NewFormula creates a formula operand.
func NewFormula(s string) Resolvable {
	return Resolvable{formula: s}
}

// IsZero reports whether no operand was set at all.
func (r Resolvable) IsZero() bool {
	return !r.isNum && r.formula == ""
}

// The accepted formula grammar is fixed: a bare level reference, level
// multiplied or floor-divided by an integer, or a plain numeric string.
// Widening it would silently change the meaning of authored content.
var (
	levelPattern    = regexp.MustCompile(`^(@actor\.level|level)$`)
	levelMulPattern = regexp.MustCompile(`^(?:@actor\.level|level)\s*\*\s*(\d+)$`)
	mulLevelPattern = regexp.MustCompile(`^(\d+)\s*\*\s*(?:@actor\.level|level)$`)
	levelDivPattern = regexp.MustCompile(`^(?:@actor\.level|level)\s*/\s*(\d+)$`)
)

// Resolve evaluates the operand against the given context. The second return
// is false when the formula does not match the accepted grammar; the caller
// must treat the owning rule element as inert rather than fail the pass.
func (r Resolvable) Resolve(ctx *Context) (int, bool) {
	if r.isNum {
		return int(r.number), true
	}

	formula := strings.ToLower(strings.TrimSpace(r.formula))
	if formula == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(formula); err == nil {
		return n, true
	}
	if levelPattern.MatchString(formula) {
		return ctx.Level, true
	}
	if m := levelMulPattern.FindStringSubmatch(formula); m != nil {
		factor, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return ctx.Level * factor, true
	}
	if m := mulLevelPattern.FindStringSubmatch(formula); m != nil {
		factor, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return ctx.Level * factor, true
	}
	if m := levelDivPattern.FindStringSubmatch(formula); m != nil {
		divisor, err := strconv.Atoi(m[1])
		if err != nil || divisor == 0 {
			return 0, false
		}
		return ctx.Level / divisor, true
	}

	return 0, false
}

// UnmarshalJSON accepts either a JSON number or a formula string.
func (r *Resolvable) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = NewValue(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = NewFormula(s)
	return nil
}

// MarshalJSON writes the operand back in its original shape.
func (r Resolvable) MarshalJSON() ([]byte, error) {
	if r.isNum {
		return json.Marshal(r.number)
	}
	return json.Marshal(r.formula)
}
