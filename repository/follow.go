package repository

import (
	"context"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/model"

	"gorm.io/gorm"
)

// FollowRepository stores subscriptions between users.
type FollowRepository struct {
	DB *gorm.DB
}

// NewFollowRepository creates and returns a new FollowRepository.
func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{
		DB: db,
	}
}

// IsFollowing reports whether follower is subscribed to author.
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&n).Error
	return n > 0, err
}

// Follow inserts the subscription; ErrDuplicate when it already exists.
func (r *FollowRepository) Follow(ctx context.Context, followerID, authorID uint) error {
	err := r.DB.WithContext(ctx).Create(&model.Follow{FollowerID: followerID, AuthorID: authorID}).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Unfollow deletes the subscription and reports whether one existed.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, authorID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FollowedAmong returns which of authorIDs the follower is subscribed to,
// using a single query.
func (r *FollowRepository) FollowedAmong(ctx context.Context, followerID uint, authorIDs []uint) (map[uint]bool, error) {
	followed := make(map[uint]bool)
	if followerID == 0 || len(authorIDs) == 0 {
		return followed, nil
	}
	var ids []uint
	if err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND author_id IN ?", followerID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

// ListFollowedAuthors returns one page of the authors the follower is
// subscribed to, in subscription order, and their total number.
func (r *FollowRepository) ListFollowedAuthors(ctx context.Context, followerID uint, page entity.Page) ([]entity.User, int64, error) {
	db := r.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&model.Follow{}).Where("follower_id = ?", followerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.User
	if err := db.Model(&model.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.id ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	users := make([]entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, *mapper.UserModelToEntity(&rows[i]))
	}
	return users, total, nil
}
