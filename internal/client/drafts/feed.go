package drafts

import (
	"math"
	"strings"

	"github.com/dmitrijs2005/biteboxd/internal/client/models"
)

// FeedFilterDraft is the raw content of the feed filter bar.
type FeedFilterDraft struct {
	Query       string
	Cuisine     string
	MinProtein  string
	MaxCalories string
	MaxCookTime string
	MinRating   string
	Limit       string
	Offset      string
}

// NormalizeFeedFilter never fails: bad numbers are dropped, the limit is
// clamped to 1..MaxPageLimit (default DefaultPageLimit) and a negative
// offset becomes 0.
func NormalizeFeedFilter(d FeedFilterDraft) models.FeedQuery {
	q := models.FeedQuery{
		Q:           strings.TrimSpace(d.Query),
		Cuisine:     strings.TrimSpace(d.Cuisine),
		MinProtein:  numberOrNil(d.MinProtein),
		MaxCalories: numberOrNil(d.MaxCalories),
		MaxCookTime: numberOrNil(d.MaxCookTime),
		MinRating:   numberOrNil(d.MinRating),
		Limit:       models.DefaultPageLimit,
	}

	if n := numberOrNil(d.Limit); n != nil {
		q.Limit = int(math.Min(math.Max(math.Trunc(*n), 1), models.MaxPageLimit))
	}
	if n := numberOrNil(d.Offset); n != nil && *n > 0 {
		q.Offset = int(math.Min(math.Trunc(*n), math.MaxInt32))
	}
	return q
}
