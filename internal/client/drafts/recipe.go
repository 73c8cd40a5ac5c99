package drafts

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/biteboxd/internal/client/models"
)

// ReasonTitleRequired is the only way a recipe draft can be invalid.
const ReasonTitleRequired = "title required"

// RecipeDraft is the raw content of the recipe form. IsPublic holds the raw
// checkbox value ("on", "true", "" ...).
type RecipeDraft struct {
	Title        string
	Author       string
	Description  string
	Instructions string
	CookTime     string
	Cuisine      string
	Difficulty   string
	IsPublic     string
	Calories     string
	ProteinG     string
	CarbsG       string
	FatG         string
	Rating       string
	Review       string
}

// Result is either a valid payload or the reason the draft was rejected.
type Result struct {
	payload models.RecipePayload
	reason  string
	ok      bool
}

func Valid(p models.RecipePayload) Result {
	return Result{payload: p, ok: true}
}

func Invalid(reason string) Result {
	return Result{reason: reason}
}

func (r Result) IsValid() bool { return r.ok }

// Payload returns the canonical payload and true for a valid result.
func (r Result) Payload() (models.RecipePayload, bool) {
	if !r.ok {
		return models.RecipePayload{}, false
	}
	return r.payload, true
}

// Reason is empty for a valid result.
func (r Result) Reason() string { return r.reason }

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.ok {
		return nil
	}
	return invalid("Title", r.reason)
}

// NormalizeRecipeDraft builds the canonical payload for d. Unparsable
// numbers are treated exactly like empty ones.
func NormalizeRecipeDraft(d RecipeDraft) Result {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Invalid(ReasonTitleRequired)
	}

	return Valid(models.RecipePayload{
		Title:        title,
		Author:       textOrNil(d.Author),
		Description:  textOrNil(d.Description),
		Instructions: textOrNil(d.Instructions),
		CookTime:     numberOrNil(d.CookTime),
		Cuisine:      textOrNil(d.Cuisine),
		Difficulty:   textOrNil(d.Difficulty),
		IsPublic:     Truthy(d.IsPublic),
		Calories:     numberOrNil(d.Calories),
		ProteinG:     numberOrNil(d.ProteinG),
		CarbsG:       numberOrNil(d.CarbsG),
		FatG:         numberOrNil(d.FatG),
		Rating:       numberOrNil(d.Rating),
		Review:       textOrNil(d.Review),
	})
}

// DraftFromRecipe prefills an edit form. Normalizing the returned draft
// gives back p unchanged.
func DraftFromRecipe(p models.RecipePayload) RecipeDraft {
	return RecipeDraft{
		Title:        p.Title,
		Author:       textOf(p.Author),
		Description:  textOf(p.Description),
		Instructions: textOf(p.Instructions),
		CookTime:     numberOf(p.CookTime),
		Cuisine:      textOf(p.Cuisine),
		Difficulty:   textOf(p.Difficulty),
		IsPublic:     strconv.FormatBool(p.IsPublic),
		Calories:     numberOf(p.Calories),
		ProteinG:     numberOf(p.ProteinG),
		CarbsG:       numberOf(p.CarbsG),
		FatG:         numberOf(p.FatG),
		Rating:       numberOf(p.Rating),
		Review:       textOf(p.Review),
	}
}

// Truthy coerces a raw checkbox value. "", "0", "false", "off" and "no"
// (any case, surrounding spaces ignored) are false; everything else is true.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}

// ParseNumber returns nil for empty, unparsable or non-finite input.
func ParseNumber(s string) *float64 {
	return numberOrNil(s)
}

func textOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func numberOrNil(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func textOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func numberOf(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
