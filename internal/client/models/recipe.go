// Package models defines the client-side shapes exchanged with the BiteBoxd
// backend.
package models

import (
	"encoding/json"
	"fmt"
)

// RecipePayload is the canonical, typed recipe record sent on create and
// update. Every field is always serialized; absent values are JSON null.
type RecipePayload struct {
	Title        string   `json:"title"`
	Author       *string  `json:"author"`
	Description  *string  `json:"description"`
	Instructions *string  `json:"instructions"`
	CookTime     *float64 `json:"cook_time"`
	Cuisine      *string  `json:"cuisine"`
	Difficulty   *string  `json:"difficulty"`
	IsPublic     bool     `json:"is_public"`
	Calories     *float64 `json:"calories"`
	ProteinG     *float64 `json:"protein_g"`
	CarbsG       *float64 `json:"carbs_g"`
	FatG         *float64 `json:"fat_g"`
	Rating       *float64 `json:"rating"`
	Review       *string  `json:"review"`
}

// Recipe is a stored recipe as returned by the backend.
type Recipe struct {
	ID int64 `json:"id"`
	RecipePayload
	PhotoURL *string `json:"photo_url"`
}

// RecipePage is one page of the owner's recipes or of the public feed.
type RecipePage struct {
	Items []Recipe
	Total int
}

type pageMeta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// UnmarshalJSON accepts both {"items": [...], "meta": {"total": n}} and a
// bare array. Without meta the total is the number of items.
func (p *RecipePage) UnmarshalJSON(b []byte) error {
	var items []Recipe
	if err := json.Unmarshal(b, &items); err == nil {
		if items == nil {
			items = []Recipe{}
		}
		p.Items = items
		p.Total = len(items)
		return nil
	}

	var env struct {
		Items []Recipe  `json:"items"`
		Meta  *pageMeta `json:"meta"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("decode recipe page: %w", err)
	}

	p.Items = env.Items
	if p.Items == nil {
		p.Items = []Recipe{}
	}
	p.Total = len(p.Items)
	if env.Meta != nil {
		p.Total = env.Meta.Total
	}
	return nil
}

// CreatedRecipe is the part of a create response used for follow-up navigation.
type CreatedRecipe struct {
	ID int64 `json:"id"`
}

// PhotoResult is returned by the photo upload endpoint.
type PhotoResult struct {
	PhotoURL string `json:"photo_url"`
}
