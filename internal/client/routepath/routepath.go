// Package routepath stores the canonical screen paths of the client.
package routepath

import "strconv"

const (
	Root     = "/"
	Feed     = "/feed"
	Login    = "/login"
	Register = "/register"

	Recipes       = "/recipes"
	RecipesPrefix = "/recipes/"
	RecipesNew    = "/recipes/new"

	RecipeDetailPattern = RecipesPrefix + ":id"
	RecipeEditPattern   = RecipesPrefix + ":id/edit"
)

// RecipeDetail returns the detail route of one recipe.
func RecipeDetail(id int64) string {
	return RecipesPrefix + strconv.FormatInt(id, 10)
}

// RecipeEdit returns the edit route of one recipe.
func RecipeEdit(id int64) string {
	return RecipeDetail(id) + "/edit"
}
