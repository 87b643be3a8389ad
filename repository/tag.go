package repository

import (
	"context"
	"errors"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/model"

	"gorm.io/gorm"
)

// TagRepository is a struct that holds the database connection.
type TagRepository struct {
	DB *gorm.DB
}

// NewTagRepository creates and returns a new TagRepository.
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		DB: db,
	}
}

// GetTagByID fetches a tag by ID. A missing tag yields (nil, nil).
func (r *TagRepository) GetTagByID(ctx context.Context, id uint) (*entity.Tag, error) {
	var tagModel model.Tag
	if err := r.DB.WithContext(ctx).First(&tagModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.TagModelToEntity(&tagModel), nil
}

// ListTags returns all tags ordered by ID.
func (r *TagRepository) ListTags(ctx context.Context) ([]entity.Tag, error) {
	var rows []model.Tag
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	tags := make([]entity.Tag, 0, len(rows))
	for i := range rows {
		tags = append(tags, *mapper.TagModelToEntity(&rows[i]))
	}
	return tags, nil
}

// CountByIDs counts the stored tags among ids.
func (r *TagRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Tag{}).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

// BulkInsertTags inserts tags in batches, skipping rows whose slug already
// exists, and returns the number of rows actually inserted.
func (r *TagRepository) BulkInsertTags(ctx context.Context, tags []entity.Tag, batchSize int) (int64, error) {
	rows := make([]model.Tag, 0, len(tags))
	for i := range tags {
		rows = append(rows, *mapper.TagEntityToModel(&tags[i]))
	}
	return bulkInsertIgnoringConflicts(r.DB.WithContext(ctx), rows, batchSize)
}
