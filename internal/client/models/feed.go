package models

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

// FeedQuery filters the public feed. Nil pointers and an empty Q are omitted
// from the query string.
type FeedQuery struct {
	Q           string
	Cuisine     string
	MinProtein  *float64
	MaxCalories *float64
	MaxCookTime *float64
	MinRating   *float64
	Limit       int
	Offset      int
}

// Values encodes q as URL query parameters.
func (q FeedQuery) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.Cuisine != "" {
		v.Set("cuisine", q.Cuisine)
	}
	setNumber(v, "min_protein", q.MinProtein)
	setNumber(v, "max_calories", q.MaxCalories)
	setNumber(v, "max_cook_time", q.MaxCookTime)
	setNumber(v, "min_rating", q.MinRating)
	return v
}

func setNumber(v url.Values, key string, n *float64) {
	if n == nil {
		return
	}
	v.Set(key, strconv.FormatFloat(*n, 'f', -1, 64))
}
