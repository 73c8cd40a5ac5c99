package cli

import (
	"context"

	"github.com/dmitrijs2005/biteboxd/internal/client/gate"
	"github.com/dmitrijs2005/biteboxd/internal/client/routepath"
)

const homeText = `BiteBoxd keeps your recipes and their macros.
  feed            browse public recipes
  login/register  sign in to manage your own
  help            list all commands`

// open asks the gate whether path may be shown. A refused navigation moves
// the user to the redirect target and tells them why.
func (a *App) open(path string) (gate.Route, bool) {
	d := a.gate.Navigate(path)
	if d.Admitted {
		a.location = d.Route.Path
		return d.Route, true
	}

	if d.Redirect == routepath.Login {
		a.println("Please log in to continue.")
	} else {
		a.println("Page not found.")
	}
	a.location = d.Redirect
	return d.Route, false
}

// Go opens the screen at path, as if following a link.
func (a *App) Go(ctx context.Context, path string) error {
	r, ok := a.open(path)
	if !ok {
		return nil
	}

	switch r.Name {
	case gate.RouteHome:
		a.println(homeText)
	case gate.RouteFeed:
		return a.feedScreen(ctx, nil)
	case gate.RouteLogin:
		return a.loginScreen(ctx)
	case gate.RouteRegister:
		return a.registerScreen(ctx)
	case gate.RouteRecipes:
		return a.listScreen(ctx)
	case gate.RouteRecipeNew:
		return a.newScreen(ctx)
	case gate.RouteRecipeDetail:
		return a.detailScreen(ctx, r.Params["id"])
	case gate.RouteRecipeEdit:
		return a.editScreen(ctx, r.Params["id"])
	}
	return nil
}

func (a *App) Login(ctx context.Context) error    { return a.Go(ctx, routepath.Login) }
func (a *App) Register(ctx context.Context) error { return a.Go(ctx, routepath.Register) }
func (a *App) List(ctx context.Context) error     { return a.Go(ctx, routepath.Recipes) }
func (a *App) New(ctx context.Context) error      { return a.Go(ctx, routepath.RecipesNew) }

func (a *App) Show(ctx context.Context, id string) error {
	return a.Go(ctx, routepath.RecipesPrefix+id)
}

func (a *App) Edit(ctx context.Context, id string) error {
	return a.Go(ctx, routepath.RecipesPrefix+id+"/edit")
}
