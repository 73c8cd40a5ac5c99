// Package gate decides, on every navigation, whether a screen may be shown
// for the current session or where the user is sent instead.
//
// The gate holds no state of its own. Each decision reads a fresh session
// snapshot, so a login or logout is reflected on the very next navigation.
package gate

import (
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/biteboxd/internal/client/routepath"
	"github.com/dmitrijs2005/biteboxd/internal/client/session"
)

type RouteName string

const (
	RouteHome         RouteName = "home"
	RouteFeed         RouteName = "feed"
	RouteLogin        RouteName = "login"
	RouteRegister     RouteName = "register"
	RouteRecipes      RouteName = "recipes"
	RouteRecipeNew    RouteName = "recipe-new"
	RouteRecipeDetail RouteName = "recipe-detail"
	RouteRecipeEdit   RouteName = "recipe-edit"
	RouteNotFound     RouteName = "not-found"
)

// Route is a resolved path. Params holds the ":id" segment for recipe routes.
type Route struct {
	Name      RouteName
	Path      string
	Protected bool
	Params    map[string]string
}

func (r Route) Matched() bool { return r.Name != RouteNotFound }

// Decision is the outcome of one navigation. Exactly one of Admitted or a
// non-empty Redirect holds.
type Decision struct {
	Route    Route
	Admitted bool
	Redirect string
}

// IsRouteAdmitted reports whether a protected screen may render.
func IsRouteAdmitted(s session.Snapshot) bool {
	return s.IsAuthenticated
}

var staticRoutes = map[string]Route{
	routepath.Root:       {Name: RouteHome},
	routepath.Feed:       {Name: RouteFeed},
	routepath.Login:      {Name: RouteLogin},
	routepath.Register:   {Name: RouteRegister},
	routepath.Recipes:    {Name: RouteRecipes, Protected: true},
	routepath.RecipesNew: {Name: RouteRecipeNew, Protected: true},
}

// Resolve matches p against the client's routes. The query string and
// fragment are ignored, as is a trailing slash.
func Resolve(p string) Route {
	clean := normalize(p)

	if r, ok := staticRoutes[clean]; ok {
		r.Path = clean
		return r
	}

	if rest, ok := strings.CutPrefix(clean, routepath.RecipesPrefix); ok {
		id, tail, _ := strings.Cut(rest, "/")
		if id != "" {
			switch tail {
			case "":
				return Route{Name: RouteRecipeDetail, Path: clean, Protected: true, Params: map[string]string{"id": id}}
			case "edit":
				return Route{Name: RouteRecipeEdit, Path: clean, Protected: true, Params: map[string]string{"id": id}}
			}
		}
	}

	return Route{Name: RouteNotFound, Path: clean}
}

// Navigate resolves p and applies the session check. Unknown paths go to
// the root, protected paths without a session go to the login screen.
func Navigate(p string, s session.Snapshot) Decision {
	r := Resolve(p)
	switch {
	case !r.Matched():
		return Decision{Route: r, Redirect: routepath.Root}
	case r.Protected && !IsRouteAdmitted(s):
		return Decision{Route: r, Redirect: routepath.Login}
	default:
		return Decision{Route: r, Admitted: true}
	}
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	if p == "" {
		return routepath.Root
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// SnapshotSource is satisfied by *session.Store.
type SnapshotSource interface {
	Current() session.Snapshot
}

// Gate binds Navigate to a live session.
type Gate struct {
	src SnapshotSource
}

func New(src SnapshotSource) *Gate {
	return &Gate{src: src}
}

func (g *Gate) Navigate(p string) Decision {
	return Navigate(p, g.src.Current())
}
