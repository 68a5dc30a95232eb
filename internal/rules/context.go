package rules

import (
	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/choices"
	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/uuid"
)

// Context carries the per-pass state a processor may consult. It is created
// fresh by the caller for every source being processed and never persisted.
type Context struct {
	// Source is the human-readable origin of the elements, e.g. a feat's
	// display name. It is stamped onto every processed result.
	Source string

	// Level is the character level, consumed by formula resolution and
	// level-gated grants.
	Level int

	// Snapshot is the live game state used to gate choice-set options at
	// prompt-construction time. May be nil.
	Snapshot *Snapshot

	// Choices is the externally-owned selection and toggle store. May be
	// nil when no source carries choice or toggle elements.
	Choices *choices.Store

	// IDs generates instance IDs for granted items. May be nil; granted
	// items then carry an empty grant ID for the consumer to fill in.
	IDs uuid.Generator
}
