package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/repository"
)

// FollowController manages subscriptions between users.
type FollowController interface {
	// ToggleFollow subscribes or unsubscribes. Add returns the author's
	// subscription view with at most recipesLimit recipes (< 0: all).
	ToggleFollow(ctx context.Context, followerID, authorID uint, op entity.MembershipOp, recipesLimit int) (*entity.SubscriptionView, error)
	Subscriptions(ctx context.Context, userID uint, page entity.Page, recipesLimit int) ([]entity.SubscriptionView, int64, error)
}

type followController struct {
	follows *repository.FollowRepository
	users   *repository.UserRepository
	recipes *repository.RecipeRepository
}

func NewFollowController(follows *repository.FollowRepository, users *repository.UserRepository, recipes *repository.RecipeRepository) FollowController {
	return &followController{
		follows: follows,
		users:   users,
		recipes: recipes,
	}
}

func (c *followController) ToggleFollow(ctx context.Context, followerID, authorID uint, op entity.MembershipOp, recipesLimit int) (*entity.SubscriptionView, error) {
	if followerID == authorID {
		return nil, entity.DetailError(entity.CodeSelfFollowNotAllowed, "You cannot subscribe to yourself.")
	}
	author, err := c.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	if author == nil {
		return nil, entity.DetailError(entity.CodeUserNotFound, "User not found.")
	}

	switch op {
	case entity.Add:
		following, err := c.follows.IsFollowing(ctx, followerID, authorID)
		if err != nil {
			return nil, fmt.Errorf("check subscription: %w", err)
		}
		if !following {
			err = c.follows.Follow(ctx, followerID, authorID)
		}
		if following || errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.DetailError(entity.CodeAlreadyFollowing,
				fmt.Sprintf("You are already subscribed to %s.", author.Username))
		}
		if err != nil {
			return nil, fmt.Errorf("follow: %w", err)
		}
		views, err := c.subscriptionViews(ctx, []entity.User{*author}, recipesLimit)
		if err != nil {
			return nil, err
		}
		return &views[0], nil

	case entity.Remove:
		removed, err := c.follows.Unfollow(ctx, followerID, authorID)
		if err != nil {
			return nil, fmt.Errorf("unfollow: %w", err)
		}
		if !removed {
			return nil, entity.DetailError(entity.CodeNotFollowing,
				fmt.Sprintf("You are not subscribed to %s.", author.Username))
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown membership operation %d", op)
	}
}

func (c *followController) Subscriptions(ctx context.Context, userID uint, page entity.Page, recipesLimit int) ([]entity.SubscriptionView, int64, error) {
	authors, total, err := c.follows.ListFollowedAuthors(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	views, err := c.subscriptionViews(ctx, authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// subscriptionViews builds views of authors the principal follows.
func (c *followController) subscriptionViews(ctx context.Context, authors []entity.User, recipesLimit int) ([]entity.SubscriptionView, error) {
	views := make([]entity.SubscriptionView, 0, len(authors))
	if len(authors) == 0 {
		return views, nil
	}
	ids := make([]uint, 0, len(authors))
	for i := range authors {
		ids = append(ids, authors[i].ID)
	}
	counts, err := c.recipes.CountRecipesByAuthor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}
	for i := range authors {
		recipes, err := c.recipes.ListRecipesByAuthor(ctx, authors[i].ID, recipesLimit)
		if err != nil {
			return nil, fmt.Errorf("list author recipes: %w", err)
		}
		previews := make([]entity.RecipePreview, 0, len(recipes))
		for j := range recipes {
			previews = append(previews, mapper.RecipePreview(&recipes[j]))
		}
		views = append(views, entity.SubscriptionView{
			UserView:     mapper.UserView(&authors[i], true),
			Recipes:      previews,
			RecipesCount: counts[authors[i].ID],
		})
	}
	return views, nil
}
