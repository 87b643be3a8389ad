package repository

import (
	"context"
	"fmt"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/model"

	"gorm.io/gorm"
)

// CollectionRepository stores per-user recipe collections (favorites and
// shopping carts), one row per (user, recipe).
type CollectionRepository struct {
	DB *gorm.DB
}

// NewCollectionRepository creates and returns a new CollectionRepository.
func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{
		DB: db,
	}
}

func membershipRow(kind entity.CollectionKind, userID, recipeID uint) (interface{}, error) {
	switch kind {
	case entity.Favorites:
		return &model.Favorite{UserID: userID, RecipeID: recipeID}, nil
	case entity.ShoppingCart:
		return &model.ShoppingCart{UserID: userID, RecipeID: recipeID}, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", kind)
	}
}

// IsMember reports whether the recipe is in the user's collection.
func (r *CollectionRepository) IsMember(ctx context.Context, kind entity.CollectionKind, userID, recipeID uint) (bool, error) {
	row, err := membershipRow(kind, 0, 0)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.DB.WithContext(ctx).Model(row).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	return n > 0, err
}

// AddMember inserts the (user, recipe) row. ErrDuplicate is returned when the
// pair already exists.
func (r *CollectionRepository) AddMember(ctx context.Context, kind entity.CollectionKind, userID, recipeID uint) error {
	row, err := membershipRow(kind, userID, recipeID)
	if err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// RemoveMember deletes the (user, recipe) row and reports whether one existed.
func (r *CollectionRepository) RemoveMember(ctx context.Context, kind entity.CollectionKind, userID, recipeID uint) (bool, error) {
	row, err := membershipRow(kind, 0, 0)
	if err != nil {
		return false, err
	}
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MemberRecipeIDs returns which of recipeIDs are in the user's collection,
// using a single query.
func (r *CollectionRepository) MemberRecipeIDs(ctx context.Context, kind entity.CollectionKind, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	members := make(map[uint]bool)
	if userID == 0 || len(recipeIDs) == 0 {
		return members, nil
	}
	row, err := membershipRow(kind, 0, 0)
	if err != nil {
		return nil, err
	}
	var ids []uint
	if err := r.DB.WithContext(ctx).Model(row).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		members[id] = true
	}
	return members, nil
}
