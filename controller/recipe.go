package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/logger"
	"github.com/RomanKim94/foodgram/repository"
	"github.com/RomanKim94/foodgram/storage"
	"github.com/RomanKim94/foodgram/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recipeImageDir = "recipes"

// RecipeController interface
type RecipeController interface {
	Create(ctx context.Context, authorID uint, payload *entity.RecipeWrite) (*entity.RecipeView, error)
	Update(ctx context.Context, id, principalID uint, payload *entity.RecipeWrite) (*entity.RecipeView, error)
	Get(ctx context.Context, id, principalID uint) (*entity.RecipeView, error)
	List(ctx context.Context, filter entity.RecipeFilter, page entity.Page, principalID uint) ([]entity.RecipeView, int64, error)
	Delete(ctx context.Context, id, principalID uint) error
	ShortLink(ctx context.Context, id uint) (string, error)
	ResolveShortLink(ctx context.Context, code string) (uint, error)
}

// recipeController struct
type recipeController struct {
	recipes  *repository.RecipeRepository
	products *repository.ProductRepository
	tags     *repository.TagRepository
	images   storage.ImageStore
	limits   entity.LimitsConfig
	views    viewBuilder
}

// NewRecipeController creates and returns a new RecipeController
func NewRecipeController(
	recipes *repository.RecipeRepository,
	products *repository.ProductRepository,
	tags *repository.TagRepository,
	collections *repository.CollectionRepository,
	follows *repository.FollowRepository,
	images storage.ImageStore,
	limits entity.LimitsConfig,
) RecipeController {
	return &recipeController{
		recipes:  recipes,
		products: products,
		tags:     tags,
		images:   images,
		limits:   limits,
		views:    viewBuilder{collections: collections, follows: follows},
	}
}

// validate runs every payload check without touching storage and returns the
// decoded image, if any. With create set all fields are required.
func (c *recipeController) validate(ctx context.Context, payload *entity.RecipeWrite, create bool) (*entity.Image, error) {
	if create {
		missing := &entity.DomainError{Code: entity.CodeMissingField, Fields: map[string][]string{}}
		const required = "This field is required."
		if payload.Ingredients == nil {
			missing.Fields["ingredients"] = []string{required}
		}
		if payload.Tags == nil {
			missing.Fields["tags"] = []string{required}
		}
		if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
			missing.Fields["name"] = []string{required}
		}
		if payload.Text == nil || strings.TrimSpace(*payload.Text) == "" {
			missing.Fields["text"] = []string{required}
		}
		if payload.CookingTime == nil {
			missing.Fields["cooking_time"] = []string{required}
		}
		if len(missing.Fields) > 0 {
			return nil, missing
		}
	} else {
		if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
			return nil, entity.FieldError(entity.CodeMissingField, "name", "This field may not be blank.")
		}
		if payload.Text != nil && strings.TrimSpace(*payload.Text) == "" {
			return nil, entity.FieldError(entity.CodeMissingField, "text", "This field may not be blank.")
		}
	}

	image, err := c.decodeImage(payload, create)
	if err != nil {
		return nil, err
	}

	if payload.CookingTime != nil && *payload.CookingTime < c.limits.MinCookingTime {
		return nil, entity.FieldError(entity.CodeInvalidCookingTime, "cooking_time",
			fmt.Sprintf("Cooking time must be at least %d.", c.limits.MinCookingTime))
	}

	if payload.Ingredients != nil {
		ids := make([]uint, 0, len(payload.Ingredients))
		for _, ing := range payload.Ingredients {
			if ing.Amount < c.limits.MinIngredientAmount {
				return nil, entity.FieldError(entity.CodeInvalidAmount, "ingredients",
					fmt.Sprintf("Amount must be at least %d.", c.limits.MinIngredientAmount))
			}
			ids = append(ids, ing.ID)
		}
		if err := ValidateReferenceSet(ctx, c.products, "ingredients", ids); err != nil {
			return nil, err
		}
	}
	if payload.Tags != nil {
		if err := ValidateReferenceSet(ctx, c.tags, "tags", payload.Tags); err != nil {
			return nil, err
		}
	}
	return image, nil
}

func (c *recipeController) decodeImage(payload *entity.RecipeWrite, create bool) (*entity.Image, error) {
	if payload.ImageUpload != nil {
		if len(payload.ImageUpload.Data) == 0 {
			return nil, entity.FieldError(entity.CodeEmptyImage, "image", "The submitted image is empty.")
		}
		return payload.ImageUpload, nil
	}
	if payload.Image == nil {
		if create {
			return nil, entity.FieldError(entity.CodeEmptyImage, "image", "An image is required.")
		}
		return nil, nil
	}
	if strings.TrimSpace(*payload.Image) == "" {
		return nil, entity.FieldError(entity.CodeEmptyImage, "image", "An image is required.")
	}
	image, err := util.DecodeDataURI(*payload.Image)
	if err != nil {
		return nil, entity.FieldError(entity.CodeInvalidImage, "image", err.Error())
	}
	return image, nil
}

// discardImage removes a stored blob; failures are only logged.
func (c *recipeController) discardImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := c.images.Delete(ctx, ref); err != nil {
		logger.Warn("failed to delete recipe image", zap.String("image", ref), zap.Error(err))
	}
}

func newShortCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// Create validates the payload, stores the image and saves the recipe with its
// ingredients and tags in one transaction.
func (c *recipeController) Create(ctx context.Context, authorID uint, payload *entity.RecipeWrite) (*entity.RecipeView, error) {
	image, err := c.validate(ctx, payload, true)
	if err != nil {
		return nil, err
	}

	ref, err := c.images.Save(ctx, recipeImageDir, image)
	if err != nil {
		return nil, fmt.Errorf("store recipe image: %w", err)
	}

	recipe := &entity.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(*payload.Name),
		Image:       ref,
		Text:        *payload.Text,
		CookingTime: *payload.CookingTime,
		ShortCode:   newShortCode(),
	}
	err = c.recipes.CreateRecipe(ctx, recipe, payload.Ingredients, payload.Tags)
	if errors.Is(err, repository.ErrDuplicate) {
		// short code collision
		recipe.ShortCode = newShortCode()
		err = c.recipes.CreateRecipe(ctx, recipe, payload.Ingredients, payload.Tags)
	}
	if err != nil {
		c.discardImage(ctx, ref)
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	logger.Info("recipe created", zap.Uint("recipe_id", recipe.ID), zap.Uint("author_id", authorID))
	return c.Get(ctx, recipe.ID, authorID)
}

// Update applies the fields present in payload. Present ingredient or tag
// lists replace the stored sets.
func (c *recipeController) Update(ctx context.Context, id, principalID uint, payload *entity.RecipeWrite) (*entity.RecipeView, error) {
	recipe, err := c.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe == nil {
		return nil, entity.DetailError(entity.CodeRecipeNotFound, "Recipe not found.")
	}
	if recipe.AuthorID != principalID {
		return nil, entity.DetailError(entity.CodeNotRecipeAuthor, "Only the author may change this recipe.")
	}

	image, err := c.validate(ctx, payload, false)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		recipe.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Text != nil {
		recipe.Text = *payload.Text
	}
	if payload.CookingTime != nil {
		recipe.CookingTime = *payload.CookingTime
	}
	oldImage := recipe.Image
	newImage := ""
	if image != nil {
		newImage, err = c.images.Save(ctx, recipeImageDir, image)
		if err != nil {
			return nil, fmt.Errorf("store recipe image: %w", err)
		}
		recipe.Image = newImage
	}

	if err := c.recipes.UpdateRecipe(ctx, recipe, payload.Ingredients, payload.Tags); err != nil {
		c.discardImage(ctx, newImage)
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if newImage != "" {
		c.discardImage(ctx, oldImage)
	}
	return c.Get(ctx, recipe.ID, principalID)
}

// Get returns the read model of one recipe for the principal (0 = anonymous).
func (c *recipeController) Get(ctx context.Context, id, principalID uint) (*entity.RecipeView, error) {
	recipe, err := c.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe == nil {
		return nil, entity.DetailError(entity.CodeRecipeNotFound, "Recipe not found.")
	}
	views, err := c.views.recipeViews(ctx, []entity.Recipe{*recipe}, principalID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns one page of recipes. Membership filters are ignored for
// anonymous principals.
func (c *recipeController) List(ctx context.Context, filter entity.RecipeFilter, page entity.Page, principalID uint) ([]entity.RecipeView, int64, error) {
	if principalID == 0 {
		filter.IsFavorited = nil
		filter.IsInShoppingCart = nil
	}
	recipes, total, err := c.recipes.ListRecipes(ctx, filter, principalID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	views, err := c.views.recipeViews(ctx, recipes, principalID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Delete removes the recipe and everything attached to it. Only the author
// may delete.
func (c *recipeController) Delete(ctx context.Context, id, principalID uint) error {
	recipe, err := c.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get recipe: %w", err)
	}
	if recipe == nil {
		return entity.DetailError(entity.CodeRecipeNotFound, "Recipe not found.")
	}
	if recipe.AuthorID != principalID {
		return entity.DetailError(entity.CodeNotRecipeAuthor, "Only the author may delete this recipe.")
	}
	if err := c.recipes.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	c.discardImage(ctx, recipe.Image)
	logger.Info("recipe deleted", zap.Uint("recipe_id", id))
	return nil
}

func (c *recipeController) ShortLink(ctx context.Context, id uint) (string, error) {
	recipe, err := c.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get recipe: %w", err)
	}
	if recipe == nil {
		return "", entity.DetailError(entity.CodeRecipeNotFound, "Recipe not found.")
	}
	return recipe.ShortCode, nil
}

func (c *recipeController) ResolveShortLink(ctx context.Context, code string) (uint, error) {
	id, err := c.recipes.GetRecipeIDByShortCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("resolve short link: %w", err)
	}
	if id == 0 {
		return 0, entity.DetailError(entity.CodeRecipeNotFound, "Recipe not found.")
	}
	return id, nil
}
