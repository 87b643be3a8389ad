package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/repository"
)

// CollectionController manages the favorites and shopping-cart collections.
type CollectionController interface {
	// ToggleMembership adds or removes a recipe. Add returns the recipe
	// preview; Remove returns nil.
	ToggleMembership(ctx context.Context, kind entity.CollectionKind, userID, recipeID uint, op entity.MembershipOp) (*entity.RecipePreview, error)
}

type collectionController struct {
	collections *repository.CollectionRepository
	recipes     *repository.RecipeRepository
}

func NewCollectionController(collections *repository.CollectionRepository, recipes *repository.RecipeRepository) CollectionController {
	return &collectionController{
		collections: collections,
		recipes:     recipes,
	}
}

func collectionLabel(kind entity.CollectionKind) string {
	if kind == entity.ShoppingCart {
		return "shopping cart"
	}
	return "favorites"
}

func (c *collectionController) ToggleMembership(ctx context.Context, kind entity.CollectionKind, userID, recipeID uint, op entity.MembershipOp) (*entity.RecipePreview, error) {
	recipe, err := c.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe == nil {
		return nil, entity.DetailError(entity.CodeRecipeNotFound, "Recipe not found.")
	}

	switch op {
	case entity.Add:
		member, err := c.collections.IsMember(ctx, kind, userID, recipeID)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", kind, err)
		}
		if !member {
			err = c.collections.AddMember(ctx, kind, userID, recipeID)
		}
		if member || errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.DetailError(entity.CodeAlreadyMember,
				fmt.Sprintf("Recipe %q is already in your %s.", recipe.Name, collectionLabel(kind)))
		}
		if err != nil {
			return nil, fmt.Errorf("add to %s: %w", kind, err)
		}
		preview := mapper.RecipePreview(recipe)
		return &preview, nil

	case entity.Remove:
		removed, err := c.collections.RemoveMember(ctx, kind, userID, recipeID)
		if err != nil {
			return nil, fmt.Errorf("remove from %s: %w", kind, err)
		}
		if !removed {
			return nil, entity.DetailError(entity.CodeNotMember,
				fmt.Sprintf("Recipe %q is not in your %s.", recipe.Name, collectionLabel(kind)))
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown membership operation %d", op)
	}
}
