package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/biteboxd/internal/client/client"
	"github.com/dmitrijs2005/biteboxd/internal/client/drafts"
	"github.com/dmitrijs2005/biteboxd/internal/client/models"
	"github.com/dmitrijs2005/biteboxd/internal/filex"
	"github.com/dmitrijs2005/biteboxd/internal/logging"
	"github.com/dmitrijs2005/biteboxd/internal/netx"
)

// Reasons for local failures of recipe actions.
const (
	ReasonMissingID  = "Recipe id is required."
	ReasonInvalidID  = "Recipe id must be a number."
	ReasonUnreadable = "Choose a non-empty file."
	ReasonNotAnImage = "Make sure it's an image file."
)

type RecipeService interface {
	List(ctx context.Context) (*models.RecipePage, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	Create(ctx context.Context, d drafts.RecipeDraft) (*models.Recipe, error)
	Update(ctx context.Context, id string, d drafts.RecipeDraft) error
	Delete(ctx context.Context, id string) error
	AttachPhoto(ctx context.Context, id string, path string) (*models.PhotoResult, error)
	Feed(ctx context.Context, d drafts.FeedFilterDraft) (*models.RecipePage, error)
}

type recipeService struct {
	api client.RecipeAPI
	log logging.Logger

	readFile func(path string) ([]byte, error)
}

func NewRecipeService(api client.RecipeAPI, log logging.Logger) RecipeService {
	if log == nil {
		log = logging.Nop()
	}
	return &recipeService{api: api, log: log.With("service", "recipes"), readFile: filex.ReadRegularFile}
}

func (s *recipeService) List(ctx context.Context) (*models.RecipePage, error) {
	page, err := s.api.ListRecipes(ctx)
	if err != nil {
		return nil, s.fail(ctx, OpList, MsgListFailed, err)
	}
	return page, nil
}

func (s *recipeService) Get(ctx context.Context, id string) (*models.Recipe, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r, err := s.api.GetRecipe(ctx, n)
	if err != nil {
		return nil, s.fail(ctx, OpGet, MsgGetFailed, err)
	}
	return r, nil
}

func (s *recipeService) Create(ctx context.Context, d drafts.RecipeDraft) (*models.Recipe, error) {
	res := drafts.NormalizeRecipeDraft(d)
	payload, ok := res.Payload()
	if !ok {
		return nil, res.Err()
	}

	r, err := s.api.CreateRecipe(ctx, payload)
	if err != nil {
		return nil, s.fail(ctx, OpCreate, MsgSaveFailed, err)
	}
	s.log.Info(ctx, "recipe created", "id", r.ID)
	return r, nil
}

func (s *recipeService) Update(ctx context.Context, id string, d drafts.RecipeDraft) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	res := drafts.NormalizeRecipeDraft(d)
	payload, ok := res.Payload()
	if !ok {
		return res.Err()
	}

	if err := s.api.UpdateRecipe(ctx, n, payload); err != nil {
		return s.fail(ctx, OpUpdate, MsgSaveFailed, err)
	}
	return nil
}

func (s *recipeService) Delete(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.api.DeleteRecipe(ctx, n); err != nil {
		return s.fail(ctx, OpDelete, MsgDeleteFailed, err)
	}
	s.log.Info(ctx, "recipe deleted", "id", n)
	return nil
}

// AttachPhoto uploads the image at path. The file must exist, be non-empty
// and sniff as image/*.
func (s *recipeService) AttachPhoto(ctx context.Context, id string, path string) (*models.PhotoResult, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	path = strings.TrimSpace(path)
	data, err := s.readFile(path)
	if err != nil {
		s.log.Debug(ctx, "photo not readable", "path", path, "error", err)
		return nil, &drafts.ValidationError{Field: "File", Reason: ReasonUnreadable}
	}
	if !netx.IsImage(data) {
		return nil, &drafts.ValidationError{Field: "File", Reason: ReasonNotAnImage}
	}

	res, err := s.api.UploadPhoto(ctx, n, path, data)
	if err != nil {
		return nil, s.fail(ctx, OpUpload, MsgUploadFailed, err)
	}
	return res, nil
}

func (s *recipeService) Feed(ctx context.Context, d drafts.FeedFilterDraft) (*models.RecipePage, error) {
	page, err := s.api.Feed(ctx, drafts.NormalizeFeedFilter(d))
	if err != nil {
		return nil, s.fail(ctx, OpFeed, MsgFeedFailed, err)
	}
	return page, nil
}

func (s *recipeService) fail(ctx context.Context, op, msg string, err error) error {
	s.log.Warn(ctx, "backend call failed", "op", op, "error", err)
	return transportError(op, msg, err)
}

func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &drafts.ValidationError{Field: "ID", Reason: ReasonMissingID}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, &drafts.ValidationError{Field: "ID", Reason: ReasonInvalidID}
	}
	return n, nil
}
