package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/biteboxd/internal/client/models"
)

var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// fakeAPI is an in-memory BiteBoxd backend. It records the last request's
// headers so tests can check what the client sent.
type fakeAPI struct {
	mu sync.Mutex

	lastAuth      string
	lastRequestID string
	lastQuery     map[string]string
	lastBody      []byte
	lastPartType  string
	lastPartName  string

	recipes map[int64]models.Recipe
	nextID  int64
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{recipes: map[int64]models.Recipe{}, nextID: 1}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		code := http.StatusInternalServerError
		msg := "Internal server error"
		if errors.As(err, &he) {
			code = he.Code
			msg, _ = he.Message.(string)
		}
		_ = c.JSON(code, map[string]any{"error": map[string]any{"message": msg, "type": "http_error"}})
	}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			f.mu.Lock()
			f.lastAuth = c.Request().Header.Get("Authorization")
			f.lastRequestID = c.Request().Header.Get(RequestIDHeaderName)
			f.lastQuery = map[string]string{}
			for k := range c.QueryParams() {
				f.lastQuery[k] = c.QueryParam(k)
			}
			f.mu.Unlock()
			return next(c)
		}
	})

	requireToken := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") != "Bearer good-token" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			return next(c)
		}
	}

	e.POST("/auth/login", func(c echo.Context) error {
		var req models.LoginRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		if req.Email != "cori@example.com" || req.Password != "passw0rd" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		return c.JSON(http.StatusOK, map[string]any{"access_token": "good-token", "token_type": "bearer"})
	})
	e.POST("/auth/register", func(c echo.Context) error {
		var req models.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		if req.Username == "taken" {
			return c.JSON(http.StatusBadRequest, map[string]any{"detail": "Email or username already exists"})
		}
		return c.JSON(http.StatusOK, map[string]any{"access_token": "ignored"})
	})

	g := e.Group("/recipes", requireToken)
	g.GET("", func(c echo.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		items := make([]models.Recipe, 0, len(f.recipes))
		for _, r := range f.recipes {
			items = append(items, r)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"meta":  map[string]int{"limit": 20, "offset": 0, "total": len(items)},
			"items": items,
		})
	})
	g.POST("", func(c echo.Context) error {
		body, _ := io.ReadAll(c.Request().Body)
		var p models.RecipePayload
		if err := json.Unmarshal(body, &p); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Validation error")
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastBody = body
		r := models.Recipe{ID: f.nextID, RecipePayload: p}
		f.recipes[r.ID] = r
		f.nextID++
		return c.JSON(http.StatusOK, r)
	})
	g.GET("/:id", func(c echo.Context) error {
		r, ok := f.lookup(c.Param("id"))
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return c.JSON(http.StatusOK, r)
	})
	g.PUT("/:id", func(c echo.Context) error {
		r, ok := f.lookup(c.Param("id"))
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		body, _ := io.ReadAll(c.Request().Body)
		if err := json.Unmarshal(body, &r.RecipePayload); err != nil {
			return err
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastBody = body
		f.recipes[r.ID] = r
		return c.JSON(http.StatusOK, r)
	})
	g.DELETE("/:id", func(c echo.Context) error {
		r, ok := f.lookup(c.Param("id"))
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.recipes, r.ID)
		return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
	})
	g.POST("/:id/photo", func(c echo.Context) error {
		r, ok := f.lookup(c.Param("id"))
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Validation error")
		}
		f.mu.Lock()
		f.lastPartType = fh.Header.Get("Content-Type")
		f.lastPartName = fh.Filename
		f.mu.Unlock()
		if fh.Header.Get("Content-Type") != "image/png" {
			return echo.NewHTTPError(http.StatusBadRequest, "File must be an image")
		}
		url := "uploads/" + strconv.FormatInt(r.ID, 10) + ".png"
		return c.JSON(http.StatusOK, map[string]string{"photo_url": url})
	})

	e.GET("/feed", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []models.Recipe{{ID: 9, RecipePayload: models.RecipePayload{Title: "Public Pho", IsPublic: true}}})
	})
	e.GET("/broken", func(c echo.Context) error {
		return c.String(http.StatusServiceUnavailable, "upstream down")
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) lookup(raw string) (models.Recipe, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return models.Recipe{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	return r, ok
}

func newTestClient(t *testing.T, srv *httptest.Server, token string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(srv.URL+"/", WithTokenSource(func() string { return token }))
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://x", "http://", "://nope"} {
		_, err := NewHTTPClient(raw)
		assert.Error(t, err, raw)
	}
}

func TestLogin(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "")
	ctx := context.Background()

	resp, err := c.Login(ctx, models.LoginRequest{Email: "cori@example.com", Password: "passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, "good-token", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Empty(t, f.lastAuth, "anonymous requests carry no Authorization header")
	assert.NotEmpty(t, f.lastRequestID)

	_, err = c.Login(ctx, models.LoginRequest{Email: "cori@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)
	msg, ok := ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", msg)

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "http_error", ae.Type)
}

func TestRegister_DetailMessage(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "")
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, models.RegisterRequest{Username: "cori", Email: "c@x.io", Password: "passw0rd"}))

	err := c.Register(ctx, models.RegisterRequest{Username: "taken", Email: "c@x.io", Password: "passw0rd"})
	msg, ok := ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Email or username already exists", msg)
}

func TestRecipeLifecycle(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "good-token")
	ctx := context.Background()

	cal := 520.0
	created, err := c.CreateRecipe(ctx, models.RecipePayload{Title: "Tacos", Calories: &cal, IsPublic: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Bearer good-token", f.lastAuth)
	assert.JSONEq(t, `{"title":"Tacos","author":null,"description":null,"instructions":null,"cook_time":null,
		"cuisine":null,"difficulty":null,"is_public":true,"calories":520,"protein_g":null,"carbs_g":null,
		"fat_g":null,"rating":null,"review":null}`, string(f.lastBody))

	got, err := c.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tacos", got.Title)

	require.NoError(t, c.UpdateRecipe(ctx, created.ID, models.RecipePayload{Title: "Fish Tacos"}))
	got, err = c.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fish Tacos", got.Title)

	page, err := c.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	photo, err := c.UploadPhoto(ctx, created.ID, "/home/cori/tacos.png", pngPixel)
	require.NoError(t, err)
	assert.Equal(t, "uploads/1.png", photo.PhotoURL)
	assert.Equal(t, "image/png", f.lastPartType)
	assert.Equal(t, "tacos.png", f.lastPartName)

	require.NoError(t, c.DeleteRecipe(ctx, created.ID))
	_, err = c.GetRecipe(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUploadPhoto_NonImageRejectedByServer(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "good-token")
	ctx := context.Background()

	created, err := c.CreateRecipe(ctx, models.RecipePayload{Title: "x"})
	require.NoError(t, err)

	_, err = c.UploadPhoto(ctx, created.ID, "notes.txt", []byte("plain text"))
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "File must be an image", ae.Message)
}

func TestProtectedCallWithoutToken(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "")

	_, err := c.ListRecipes(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSetTokenSource_IsReadPerRequest(t *testing.T) {
	f, srv := newFakeAPI(t)
	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)

	token := ""
	c.SetTokenSource(func() string { return token })

	_, err = c.ListRecipes(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	token = "good-token"
	_, err = c.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer good-token", f.lastAuth)
}

func TestFeed_BareArrayAndQuery(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "")

	protein := 25.0
	page, err := c.Feed(context.Background(), models.FeedQuery{Q: "pho", MinProtein: &protein, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "Public Pho", page.Items[0].Title)

	assert.Equal(t, map[string]string{"limit": "20", "offset": "0", "q": "pho", "min_protein": "25"}, f.lastQuery)
}

func TestRequestIDsAreUnique(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "")
	ctx := context.Background()

	_, _ = c.Feed(ctx, models.FeedQuery{Limit: 1})
	first := f.lastRequestID
	_, _ = c.Feed(ctx, models.FeedQuery{Limit: 1})

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, f.lastRequestID)
}

func TestServiceUnavailableStatus(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "")

	err := c.doJSON(context.Background(), http.MethodGet, "/broken", nil, nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	_, ok := ServerMessage(err)
	assert.False(t, ok, "non-JSON error bodies carry no message")
}

func TestNetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Feed(context.Background(), models.FeedQuery{Limit: 20})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCanceledContextIsReturnedAsIs(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := newTestClient(t, srv, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Feed(ctx, models.FeedQuery{Limit: 20})
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrUnavailable)
}

func TestWithTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()

	c, err := NewHTTPClient(slow.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Feed(context.Background(), models.FeedQuery{Limit: 20})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestAPIError_Message(t *testing.T) {
	assert.Equal(t, "api error: 500 Internal Server Error", (&APIError{Status: 500}).Error())
	assert.Equal(t, "api error: 422: Validation error", (&APIError{Status: 422, Message: "Validation error"}).Error())
	assert.Nil(t, (&APIError{Status: 422}).Unwrap())
}
