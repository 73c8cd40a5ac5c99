package cli

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/biteboxd/internal/client/models"
)

func printRecipeTable(w io.Writer, items []models.Recipe) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCUISINE\tKCAL\tPROTEIN\tRATING\tPUBLIC")
	for _, r := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Title, text(r.Cuisine), number(r.Calories), number(r.ProteinG), number(r.Rating), yesNo(r.IsPublic))
	}
	_ = tw.Flush()
}

func printRecipe(w io.Writer, r *models.Recipe, baseURL string) {
	fmt.Fprintf(w, "#%d %s\n", r.ID, r.Title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		if value != "" && value != "-" {
			fmt.Fprintf(tw, "  %s\t%s\n", label, value)
		}
	}
	row("Author", text(r.Author))
	row("Cuisine", text(r.Cuisine))
	row("Difficulty", text(r.Difficulty))
	row("Cook time", number(r.CookTime))
	row("Calories", number(r.Calories))
	row("Protein (g)", number(r.ProteinG))
	row("Carbs (g)", number(r.CarbsG))
	row("Fat (g)", number(r.FatG))
	row("Rating", number(r.Rating))
	row("Public", yesNo(r.IsPublic))
	if r.PhotoURL != nil {
		row("Photo", photoURL(baseURL, *r.PhotoURL))
	}
	_ = tw.Flush()

	for _, block := range []struct {
		title string
		body  *string
	}{
		{"Description", r.Description},
		{"Instructions", r.Instructions},
		{"Review", r.Review},
	} {
		if block.body != nil {
			fmt.Fprintf(w, "\n%s:\n%s\n", block.title, *block.body)
		}
	}
}

// photoURL resolves a backend-relative photo path against baseURL.
func photoURL(baseURL, p string) string {
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(p, "/")
}

func text(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func number(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
