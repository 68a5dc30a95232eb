package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/choices"
	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/config"
	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/errors"
	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/rules"
	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/uuid"
)

// bundle is the character input: base state plus every active rule-element
// bearing source (feats, class features, gear, conditions, effects).
type bundle struct {
	Name       string   `json:"name"`
	Level      int      `json:"level"`
	BaseSize   string   `json:"baseSize"`
	BaseTraits []string `json:"baseTraits"`
	Options    []string `json:"options"`
	Effects    []string `json:"effects"`
	Sources    []source `json:"sources"`
}

type source struct {
	Name  string          `json:"name"`
	Rules json.RawMessage `json:"rules"`
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	path := cfg.Sheet.BundlePath
	if len(os.Args) > 1 {
		path = os.Args[1]
		cfg.Sheet.BundlePath = path
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Usage: sheet <bundle.json> (or set SHEET_BUNDLE): %v", err)
	}

	b, err := loadBundle(path)
	if err != nil {
		log.Fatalf("Failed to load bundle: %v", err)
	}

	store := choices.NewStore()
	ids := uuid.NewV4Generator()

	// One processing pass per source, merged in source order.
	parts := make([]*rules.Aggregate, 0, len(b.Sources))
	baseSnapshot := rules.NewSnapshot(b.Level, b.Options, b.Effects, b.BaseTraits)
	for _, src := range b.Sources {
		elements, err := rules.DecodeElements(src.Rules)
		if err != nil {
			log.Printf("Sheet: skipping source %s: %v", src.Name, err)
			continue
		}
		ctx := &rules.Context{
			Source:   src.Name,
			Level:    b.Level,
			Snapshot: baseSnapshot,
			Choices:  store,
			IDs:      ids,
		}
		part := rules.Process(elements, ctx)
		if cfg.Sheet.Verbose {
			log.Printf("Sheet: %s produced %d modifiers", src.Name, len(part.Modifiers))
		}
		parts = append(parts, part)
	}
	agg := rules.Merge(parts...)

	// Roll options granted by the sources themselves feed back into the
	// snapshot used for activation filtering.
	snap := rules.NewSnapshot(b.Level, b.Options, b.Effects, b.BaseTraits)
	for _, option := range agg.ActiveRollOptions(baseSnapshot) {
		snap.AddOption(option)
	}

	printSheet(b, agg, snap, store)
}

func loadBundle(path string) (*bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("bundle %s does not exist", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "parsing character bundle")
	}
	if b.Level < 1 {
		return nil, errors.InvalidArgumentf("character level %d is invalid", b.Level)
	}
	return &b, nil
}

func printSheet(b *bundle, agg *rules.Aggregate, snap *rules.Snapshot, store *choices.Store) {
	fmt.Printf("%s (level %d)\n", b.Name, b.Level)

	size := agg.FinalSize(rules.Size(b.BaseSize), snap)
	fmt.Printf("Size: %s\n", size)
	fmt.Printf("Traits: %v\n", agg.FinalTraits(b.BaseTraits, snap))

	speeds := agg.EffectiveSpeeds(snap)
	types := make([]string, 0, len(speeds))
	for t := range speeds {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("Speed (%s): %d\n", t, speeds[t])
	}

	for _, mod := range agg.Modifiers {
		if !mod.Enabled || !mod.Predicate.Satisfied(snap) {
			continue
		}
		fmt.Printf("Modifier: %s %+d (%s) to %s [%s]\n", mod.Label, mod.Value, mod.Type, mod.Selector, mod.Source)
	}

	if pools := agg.PooledDamageDice(snap); len(pools) > 0 {
		fmt.Printf("Extra damage: %s\n", rules.FormatDamageDice(pools))
	}
	if hp := agg.EffectiveTempHP(snap); hp > 0 {
		fmt.Printf("Temporary HP: %d\n", hp)
	}
	if healing := agg.TotalFastHealing(nil, snap); healing > 0 {
		fmt.Printf("Fast healing: %d\n", healing)
	}

	for _, r := range agg.Resistances {
		if !r.Predicate.Satisfied(snap) {
			continue
		}
		fmt.Printf("Resistance: %v %d [%s]\n", r.Types, r.Value, r.Source)
	}
	for _, w := range agg.Weaknesses {
		if !w.Predicate.Satisfied(snap) {
			continue
		}
		fmt.Printf("Weakness: %v %d [%s]\n", w.Types, w.Value, w.Source)
	}
	for _, im := range agg.Immunities {
		if !im.Predicate.Satisfied(snap) {
			continue
		}
		fmt.Printf("Immunity: %v [%s]\n", im.Types, im.Source)
	}

	for _, s := range agg.Senses {
		if !s.Predicate.Satisfied(snap) {
			continue
		}
		if s.Range > 0 {
			fmt.Printf("Sense: %s %d ft [%s]\n", s.Sense, s.Range, s.Source)
		} else {
			fmt.Printf("Sense: %s [%s]\n", s.Sense, s.Source)
		}
	}

	for _, g := range agg.GrantedItems {
		fmt.Printf("Granted item: %s [%s]\n", g.ItemID, g.Source)
	}

	for _, pending := range agg.PendingChoices(store) {
		fmt.Printf("Pending choice: %s (pick %d) from %s\n", pending.Prompt, pending.Count, pending.Source)
		for _, opt := range pending.Options {
			fmt.Printf("  - %s\n", opt.Label)
		}
	}
}
