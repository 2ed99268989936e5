package storage

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/foodfireroad/foodfire/internal/core"
)

// wireDocument mirrors core.Document with pointer fields so a missing
// top-level key can be told apart from an empty one.
type wireDocument struct {
	Meals      *[]core.Meal     `json:"meals"`
	Recipes    *[]core.Recipe   `json:"recipes"`
	Activities *[]core.Activity `json:"activities"`
	Settings   *core.Settings   `json:"settings"`
}

// Encode serialises a document. A document that Decode would reject is not
// encoded, so a store never writes something it cannot read back.
func Encode(doc core.Document) ([]byte, error) {
	doc = normalize(doc)
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses a document strictly. Any structural problem is reported as
// core.ErrCorruptDocument.
func Decode(data []byte) (core.Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return core.Document{}, fmt.Errorf("%w: %v", core.ErrCorruptDocument, err)
	}

	switch {
	case w.Meals == nil:
		return core.Document{}, missing("meals")
	case w.Recipes == nil:
		return core.Document{}, missing("recipes")
	case w.Activities == nil:
		return core.Document{}, missing("activities")
	case w.Settings == nil:
		return core.Document{}, missing("settings")
	}

	doc := normalize(core.Document{
		Meals:      *w.Meals,
		Recipes:    *w.Recipes,
		Activities: *w.Activities,
		Settings:   *w.Settings,
	})
	if err := validate(doc); err != nil {
		return core.Document{}, err
	}
	return doc, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s: %v", core.ErrCorruptDocument, field, core.ErrMissingRequired)
}

// normalize replaces nil collections with empty ones.
func normalize(doc core.Document) core.Document {
	if doc.Meals == nil {
		doc.Meals = []core.Meal{}
	}
	if doc.Recipes == nil {
		doc.Recipes = []core.Recipe{}
	}
	if doc.Activities == nil {
		doc.Activities = []core.Activity{}
	}
	for i := range doc.Recipes {
		if doc.Recipes[i].Ingredients == nil {
			doc.Recipes[i].Ingredients = []core.Ingredient{}
		}
	}
	return doc
}

func validate(doc core.Document) error {
	if !doc.Settings.UnitSystem.IsValid() {
		return corrupt("settings: unit system %q", doc.Settings.UnitSystem)
	}
	seen := make(map[uuid.UUID]bool)
	for i, m := range doc.Meals {
		if m.ID == uuid.Nil {
			return corrupt("meals[%d]: missing id", i)
		}
		if seen[m.ID] {
			return corrupt("meals[%d]: duplicate id %s", i, m.ID)
		}
		seen[m.ID] = true
		if m.Date.IsZero() {
			return corrupt("meals[%d]: missing date", i)
		}
		if !m.Type.IsValid() {
			return corrupt("meals[%d]: meal type %q", i, m.Type)
		}
	}
	seen = make(map[uuid.UUID]bool)
	for i, r := range doc.Recipes {
		if r.ID == uuid.Nil {
			return corrupt("recipes[%d]: missing id", i)
		}
		if seen[r.ID] {
			return corrupt("recipes[%d]: duplicate id %s", i, r.ID)
		}
		seen[r.ID] = true
		for j, ing := range r.Ingredients {
			if ing.ID == uuid.Nil {
				return corrupt("recipes[%d].ingredients[%d]: missing id", i, j)
			}
		}
	}
	seen = make(map[uuid.UUID]bool)
	for i, a := range doc.Activities {
		if a.ID == uuid.Nil {
			return corrupt("activities[%d]: missing id", i)
		}
		if seen[a.ID] {
			return corrupt("activities[%d]: duplicate id %s", i, a.ID)
		}
		seen[a.ID] = true
		if a.Date.IsZero() {
			return corrupt("activities[%d]: missing date", i)
		}
		if !core.ValidIntensity(a.Intensity) {
			return corrupt("activities[%d]: intensity %d", i, a.Intensity)
		}
	}
	return nil
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", core.ErrCorruptDocument, fmt.Sprintf(format, args...))
}
