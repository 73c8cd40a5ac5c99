package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/biteboxd/internal/client/drafts"
	"github.com/dmitrijs2005/biteboxd/internal/client/routepath"
)

func (a *App) listScreen(ctx context.Context) error {
	page, err := a.recipes.List(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(page.Items) == 0 {
		a.println("No recipes yet. Type 'new' to add one.")
		return nil
	}
	printRecipeTable(a.out, page.Items)
	fmt.Fprintf(a.out, "%d recipe(s)\n", page.Total)
	return nil
}

func (a *App) detailScreen(ctx context.Context, id string) error {
	r, err := a.recipes.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	printRecipe(a.out, r, a.baseURL)
	return nil
}

// newScreen fills a recipe form, saves it and offers a photo upload. A
// failed upload keeps the saved recipe.
func (a *App) newScreen(ctx context.Context) error {
	var d drafts.RecipeDraft
	if err := a.fillRecipeForm(&d, false); err != nil {
		return err
	}

	r, err := a.recipes.Create(ctx, d)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Saved recipe #%d.\n", r.ID)
	a.location = routepath.RecipeDetail(r.ID)

	path, err := getSimpleText(a.reader, "Photo file (optional, Enter to skip)", a.out)
	if err != nil || path == "" {
		return nil
	}
	return a.upload(ctx, fmt.Sprint(r.ID), path)
}

func (a *App) editScreen(ctx context.Context, id string) error {
	r, err := a.recipes.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	d := drafts.DraftFromRecipe(r.RecipePayload)
	if err := a.fillRecipeForm(&d, true); err != nil {
		return err
	}

	if err := a.recipes.Update(ctx, id, d); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Saved.")
	a.location = routepath.RecipeDetail(r.ID)
	return nil
}

// Delete removes a recipe after confirmation. It is offered on the detail
// screen, so it needs the same access.
func (a *App) Delete(ctx context.Context, id string) error {
	if _, ok := a.open(routepath.RecipesPrefix + id); !ok {
		return nil
	}

	ok, err := getConfirmation(a.reader, "Delete this recipe?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	if err := a.recipes.Delete(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Deleted.")
	a.location = routepath.Recipes
	return nil
}

// Photo uploads an image for a recipe. It belongs to the edit screen.
func (a *App) Photo(ctx context.Context, id, path string) error {
	if _, ok := a.open(routepath.RecipesPrefix + id + "/edit"); !ok {
		return nil
	}
	return a.upload(ctx, id, path)
}

func (a *App) upload(ctx context.Context, id, path string) error {
	res, err := a.recipes.AttachPhoto(ctx, id, path)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println("Photo uploaded:", photoURL(a.baseURL, res.PhotoURL))
	return nil
}

// Feed shows the public feed. args are free-text words and key=value
// filters, e.g. "feed tacos min_protein=20 limit=10".
func (a *App) Feed(ctx context.Context, args []string) error {
	if _, ok := a.open(routepath.Feed); !ok {
		return nil
	}
	return a.feedScreen(ctx, args)
}

func (a *App) feedScreen(ctx context.Context, args []string) error {
	page, err := a.recipes.Feed(ctx, parseFeedArgs(args))
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(page.Items) == 0 {
		a.println("Nothing in the feed matches.")
		return nil
	}
	printRecipeTable(a.out, page.Items)
	return nil
}

func parseFeedArgs(args []string) drafts.FeedFilterDraft {
	var d drafts.FeedFilterDraft
	var words []string

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			words = append(words, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "q":
			words = append(words, value)
		case "cuisine":
			d.Cuisine = value
		case "min_protein", "protein":
			d.MinProtein = value
		case "max_calories", "calories":
			d.MaxCalories = value
		case "max_cook_time", "time":
			d.MaxCookTime = value
		case "min_rating", "rating":
			d.MinRating = value
		case "limit":
			d.Limit = value
		case "offset":
			d.Offset = value
		default:
			words = append(words, arg)
		}
	}

	d.Query = strings.Join(words, " ")
	return d
}

type formField struct {
	label     string
	value     *string
	multiline bool
	yesNo     bool
}

func recipeFields(d *drafts.RecipeDraft) []formField {
	return []formField{
		{label: "Title", value: &d.Title},
		{label: "Author", value: &d.Author},
		{label: "Description", value: &d.Description, multiline: true},
		{label: "Instructions", value: &d.Instructions, multiline: true},
		{label: "Cook time (minutes)", value: &d.CookTime},
		{label: "Cuisine", value: &d.Cuisine},
		{label: "Difficulty", value: &d.Difficulty},
		{label: "Calories", value: &d.Calories},
		{label: "Protein (g)", value: &d.ProteinG},
		{label: "Carbs (g)", value: &d.CarbsG},
		{label: "Fat (g)", value: &d.FatG},
		{label: "Rating (1-5)", value: &d.Rating},
		{label: "Review", value: &d.Review, multiline: true},
		{label: "Public? (yes/no)", value: &d.IsPublic, yesNo: true},
	}
}

// fillRecipeForm prompts for every field of d. When editing, an empty answer
// keeps the current value and "-" clears it.
func (a *App) fillRecipeForm(d *drafts.RecipeDraft, editing bool) error {
	if editing {
		a.println("Press Enter to keep a value, '-' to clear it.")
	}

	for _, f := range recipeFields(d) {
		prompt := f.label
		current := *f.value
		if f.yesNo {
			current = yesNo(drafts.Truthy(current))
		}
		if editing && current != "" {
			prompt += " [" + oneLine(current) + "]"
		}

		var (
			answer string
			err    error
		)
		if f.multiline {
			answer, err = getMultiline(a.reader, prompt, a.out)
		} else {
			answer, err = getSimpleText(a.reader, prompt, a.out)
		}
		if err != nil {
			return err
		}

		if editing {
			if answer == "" {
				continue
			}
			if answer == "-" {
				answer = ""
			}
		}
		if f.yesNo {
			answer = expandYesNo(answer)
		}
		*f.value = answer
	}
	return nil
}

// expandYesNo turns the one-letter answers into words the checkbox coercion
// understands; "n" alone would otherwise count as checked.
func expandYesNo(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y":
		return "yes"
	case "n":
		return "no"
	}
	return s
}

func oneLine(s string) string {
	first, _, multi := strings.Cut(s, "\n")
	if multi {
		return first + " ..."
	}
	return first
}
