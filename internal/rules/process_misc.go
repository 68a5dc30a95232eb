package rules

import (
	"log"
	"regexp"
	"strings"
)

// itemPlaceholder matches {item|...} references inside property paths. The
// reference is resolved through the choice store: the final path segment of
// the reference is the flag key of a recorded selection.
var itemPlaceholder = regexp.MustCompile(`\{item\|([^}]+)\}`)

// processActiveEffectLike turns an ActiveEffectLike element into a property
// modification. Paths containing an unresolved choice placeholder make the
// element inert until the choice is answered.
func processActiveEffectLike(el *ActiveEffectLike, ctx *Context) *PropertyModificationResult {
	if el.Path == "" {
		log.Printf("RuleEngine: ActiveEffectLike from %s has no property path, skipping", ctx.Source)
		return nil
	}
	path, ok := resolvePlaceholders(el.Path, ctx)
	if !ok {
		return nil
	}
	value, ok := el.Value.Resolve(ctx)
	if !ok {
		log.Printf("RuleEngine: ActiveEffectLike from %s has unresolvable value, skipping", ctx.Source)
		return nil
	}

	mode := el.Mode
	if mode == "" {
		mode = ModeAdd
	}

	return &PropertyModificationResult{
		Path:      path,
		Mode:      mode,
		Value:     value,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// resolvePlaceholders substitutes {item|...} references with the recorded
// choice value. Returns false when a referenced choice has not been resolved
// yet.
func resolvePlaceholders(path string, ctx *Context) (string, bool) {
	unresolved := false
	resolved := itemPlaceholder.ReplaceAllStringFunc(path, func(match string) string {
		ref := itemPlaceholder.FindStringSubmatch(match)[1]
		flag := ref
		if idx := strings.LastIndex(ref, "."); idx >= 0 {
			flag = ref[idx+1:]
		}
		if ctx.Choices != nil {
			if values, ok := ctx.Choices.Selection(flag); ok && len(values) > 0 {
				return values[0]
			}
		}
		unresolved = true
		return match
	})
	if unresolved {
		log.Printf("RuleEngine: unresolved choice reference in path %q from %s, skipping", path, ctx.Source)
		return "", false
	}
	return resolved, true
}

// processRollOption turns a RollOption element into a roll-option result. A
// toggleable option consults the store for its current state; otherwise the
// option starts in its default-or-on state.
func processRollOption(el *RollOption, ctx *Context) *RollOptionResult {
	if el.Option == "" {
		log.Printf("RuleEngine: RollOption from %s has no option, skipping", ctx.Source)
		return nil
	}

	domain := strings.ToLower(el.Domain)
	if domain == "" {
		domain = "all"
	}
	option := strings.ToLower(el.Option)

	enabled := true
	if el.Toggleable {
		enabled = el.Default
		if ctx.Choices != nil {
			if state, set := ctx.Choices.Toggle(option); set {
				enabled = state
			}
		}
	}

	return &RollOptionResult{
		Domain:     domain,
		Option:     option,
		Toggleable: el.Toggleable,
		Enabled:    enabled,
		Source:     ctx.Source,
		Predicate:  el.Predicate,
	}
}

// processToggleProperty turns a ToggleProperty element into a toggle result,
// reading the user's current state from the store.
func processToggleProperty(el *ToggleProperty, ctx *Context) *TogglePropertyResult {
	if el.Property == "" {
		log.Printf("RuleEngine: ToggleProperty from %s has no property, skipping", ctx.Source)
		return nil
	}

	enabled := el.Default
	if ctx.Choices != nil {
		if state, set := ctx.Choices.Toggle(el.Property); set {
			enabled = state
		}
	}

	label := el.Label
	if label == "" {
		label = ctx.Source
	}

	return &TogglePropertyResult{
		Property:  el.Property,
		Label:     label,
		Enabled:   enabled,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processCreatureSize turns a CreatureSize element into a size change.
// Either an absolute size or a relative resize must be present.
func processCreatureSize(el *CreatureSize, ctx *Context) *CreatureSizeResult {
	if el.Value != "" && !IsValidSize(el.Value) {
		log.Printf("RuleEngine: CreatureSize from %s names unknown size %q, skipping", ctx.Source, el.Value)
		return nil
	}
	if el.Value == "" && el.Resize == 0 {
		log.Printf("RuleEngine: CreatureSize from %s changes nothing, skipping", ctx.Source)
		return nil
	}

	size := Size("")
	if el.Value != "" {
		size = Size(strings.ToLower(string(el.Value)))
	}

	return &CreatureSizeResult{
		Size:      size,
		Resize:    el.Resize,
		Min:       Size(strings.ToLower(string(el.Min))),
		Max:       Size(strings.ToLower(string(el.Max))),
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processActorTraits turns an ActorTraits element into a trait change.
func processActorTraits(el *ActorTraits, ctx *Context) *ActorTraitsResult {
	if len(el.Add) == 0 && len(el.Remove) == 0 {
		log.Printf("RuleEngine: ActorTraits from %s changes nothing, skipping", ctx.Source)
		return nil
	}
	return &ActorTraitsResult{
		Add:       lowerAll(el.Add),
		Remove:    lowerAll(el.Remove),
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}
