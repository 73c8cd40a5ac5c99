package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/biteboxd/internal/client/routepath"
	"github.com/dmitrijs2005/biteboxd/internal/client/session"
)

var (
	anonymous = session.Snapshot{}
	signedIn  = session.Snapshot{IsAuthenticated: true, Token: "tok"}
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in        string
		name      RouteName
		protected bool
		id        string
	}{
		{"/", RouteHome, false, ""},
		{"", RouteHome, false, ""},
		{"/feed", RouteFeed, false, ""},
		{"/feed?q=pho", RouteFeed, false, ""},
		{"/login", RouteLogin, false, ""},
		{"/register/", RouteRegister, false, ""},
		{"/recipes", RouteRecipes, true, ""},
		{"recipes", RouteRecipes, true, ""},
		{"/recipes/new", RouteRecipeNew, true, ""},
		{"/recipes/12", RouteRecipeDetail, true, "12"},
		{"/recipes/12/edit", RouteRecipeEdit, true, "12"},
		{"/recipes/12/edit/more", RouteNotFound, false, ""},
		{"/recipes/12/photo", RouteNotFound, false, ""},
		{"/admin", RouteNotFound, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r := Resolve(tt.in)
			assert.Equal(t, tt.name, r.Name)
			assert.Equal(t, tt.protected, r.Protected)
			assert.Equal(t, tt.id, r.Params["id"])
		})
	}
}

func TestNavigate_NeverAdmitsProtectedWithoutSession(t *testing.T) {
	for _, p := range []string{
		routepath.Recipes,
		routepath.RecipesNew,
		routepath.RecipeDetail(3),
		routepath.RecipeEdit(3),
	} {
		d := Navigate(p, anonymous)
		assert.False(t, d.Admitted, p)
		assert.Equal(t, routepath.Login, d.Redirect, p)

		d = Navigate(p, signedIn)
		assert.True(t, d.Admitted, p)
		assert.Empty(t, d.Redirect, p)
	}
}

func TestNavigate_PublicRoutesAlwaysAdmitted(t *testing.T) {
	for _, p := range []string{routepath.Root, routepath.Feed, routepath.Login, routepath.Register} {
		assert.True(t, Navigate(p, anonymous).Admitted, p)
		assert.True(t, Navigate(p, signedIn).Admitted, p)
	}
}

func TestNavigate_UnknownRedirectsHome(t *testing.T) {
	d := Navigate("/nowhere", signedIn)
	assert.False(t, d.Admitted)
	assert.Equal(t, routepath.Root, d.Redirect)
}

type flipSource struct{ snap session.Snapshot }

func (f *flipSource) Current() session.Snapshot { return f.snap }

func TestGate_ReadsFreshSnapshotEachTime(t *testing.T) {
	src := &flipSource{snap: signedIn}
	g := New(src)

	require.True(t, g.Navigate("/recipes").Admitted)

	src.snap = anonymous
	d := g.Navigate("/recipes")
	assert.False(t, d.Admitted)
	assert.Equal(t, routepath.Login, d.Redirect)
}

func TestIsRouteAdmitted(t *testing.T) {
	assert.False(t, IsRouteAdmitted(anonymous))
	assert.True(t, IsRouteAdmitted(signedIn))
}
