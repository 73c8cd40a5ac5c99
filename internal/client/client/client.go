package client

import (
	"context"

	"github.com/dmitrijs2005/biteboxd/internal/client/models"
)

// AuthAPI is the part of the backend used by the session store.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) error
}

// RecipeAPI is the part of the backend used by the recipe pages.
type RecipeAPI interface {
	ListRecipes(ctx context.Context) (*models.RecipePage, error)
	GetRecipe(ctx context.Context, id int64) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, p models.RecipePayload) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, p models.RecipePayload) error
	DeleteRecipe(ctx context.Context, id int64) error
	Feed(ctx context.Context, q models.FeedQuery) (*models.RecipePage, error)
	UploadPhoto(ctx context.Context, id int64, filename string, data []byte) (*models.PhotoResult, error)
}

type Client interface {
	AuthAPI
	RecipeAPI
}
