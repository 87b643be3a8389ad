package controller

import (
	"context"
	"fmt"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/repository"
)

// viewBuilder resolves the per-principal flags of a batch of recipes with one
// query per relation.
type viewBuilder struct {
	collections *repository.CollectionRepository
	follows     *repository.FollowRepository
}

func (b viewBuilder) recipeViews(ctx context.Context, recipes []entity.Recipe, principalID uint) ([]entity.RecipeView, error) {
	views := make([]entity.RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for i := range recipes {
		recipeIDs = append(recipeIDs, recipes[i].ID)
		authorIDs = append(authorIDs, recipes[i].AuthorID)
	}

	favorited, err := b.collections.MemberRecipeIDs(ctx, entity.Favorites, principalID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	carted, err := b.collections.MemberRecipeIDs(ctx, entity.ShoppingCart, principalID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load shopping cart: %w", err)
	}
	followed, err := b.follows.FollowedAmong(ctx, principalID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}

	for i := range recipes {
		r := &recipes[i]
		views = append(views, entity.RecipeView{
			ID:               r.ID,
			Ingredients:      r.Ingredients,
			Tags:             r.Tags,
			Image:            r.Image,
			Name:             r.Name,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			Author:           mapper.UserView(&r.Author, followed[r.AuthorID]),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: carted[r.ID],
		})
	}
	return views, nil
}

func (b viewBuilder) userViews(ctx context.Context, users []entity.User, principalID uint) ([]entity.UserView, error) {
	ids := make([]uint, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}
	followed, err := b.follows.FollowedAmong(ctx, principalID, ids)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}
	views := make([]entity.UserView, 0, len(users))
	for i := range users {
		views = append(views, mapper.UserView(&users[i], followed[users[i].ID]))
	}
	return views, nil
}
