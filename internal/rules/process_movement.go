package rules

import (
	"log"
	"strings"
)

// processBaseSpeed turns a BaseSpeed element into a speed result. The speed
// type defaults to land.
func processBaseSpeed(el *BaseSpeed, ctx *Context) *SpeedResult {
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: BaseSpeed from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}

	speedType := strings.ToLower(el.SpeedType)
	if speedType == "" {
		speedType = "land"
	}

	return &SpeedResult{
		Type:      speedType,
		Value:     value,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processSense turns a Sense element into a sense result. A sense with no
// range, such as darkvision, resolves to range 0.
func processSense(el *Sense, ctx *Context) *SenseResult {
	if el.Sense == "" {
		log.Printf("RuleEngine: Sense from %s has no sense type, skipping", ctx.Source)
		return nil
	}

	senseRange := 0
	if !el.Range.IsZero() {
		r, ok := el.Range.Resolve(ctx)
		if !ok {
			log.Printf("RuleEngine: Sense from %s has unresolvable range, skipping", ctx.Source)
			return nil
		}
		senseRange = r
	}

	return &SenseResult{
		Sense:     strings.ToLower(el.Sense),
		Acuity:    strings.ToLower(el.Acuity),
		Range:     senseRange,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}
