package rules

import (
	"log"
	"regexp"
	"strings"
)

// processGrantItem turns a GrantItem element into a granted-item record.
// Returns nil when the item reference is missing or the character has not
// reached the element's level gate.
func processGrantItem(el *GrantItem, ctx *Context) *GrantedItemResult {
	if el.ItemID == "" {
		log.Printf("RuleEngine: GrantItem from %s has no item reference, skipping", ctx.Source)
		return nil
	}
	if el.Level > 0 && ctx.Level < el.Level {
		return nil
	}

	grantID := ""
	if ctx.IDs != nil {
		grantID = ctx.IDs.New()
	}

	return &GrantedItemResult{
		ItemID:    el.ItemID,
		GrantID:   grantID,
		Source:    ctx.Source,
		Predicate: el.Predicate,
	}
}

// processChoiceSet turns a ChoiceSet element into a choice prompt. Options
// are gated against the live snapshot; a prompt left with no options is
// invalid and rejected here rather than surfaced to the user.
func processChoiceSet(el *ChoiceSet, ctx *Context) *ChoicePrompt {
	flag := el.Flag
	if flag == "" {
		flag = slugify(ctx.Source)
	}
	if flag == "" {
		log.Printf("RuleEngine: ChoiceSet from %s has no usable flag key, skipping", ctx.Source)
		return nil
	}

	count := el.Count
	if count <= 0 {
		count = 1
	}

	var options []PromptOption
	for _, opt := range el.Options {
		if !opt.Predicate.Satisfied(ctx.Snapshot) {
			continue
		}
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		options = append(options, PromptOption{Value: opt.Value, Label: label})
	}
	if len(options) == 0 {
		log.Printf("RuleEngine: ChoiceSet %q from %s has no valid options, skipping", flag, ctx.Source)
		return nil
	}

	prompt := el.Prompt
	if prompt == "" {
		prompt = ctx.Source
	}

	return &ChoicePrompt{
		Flag:    flag,
		Prompt:  prompt,
		Count:   count,
		Options: options,
		Source:  ctx.Source,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a stable flag key from a display name.
func slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
