package repository

import (
	"context"
	"errors"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/model"

	"gorm.io/gorm"
)

// UserRepository is a struct that holds the database connection.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates and returns a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

// CreateUser creates a new user in the database and sets its ID.
func (r *UserRepository) CreateUser(ctx context.Context, userEntity *entity.User) error {
	userModel := mapper.UserEntityToModel(userEntity)

	if err := r.DB.WithContext(ctx).Create(userModel).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	userEntity.ID = userModel.ID
	userEntity.CreatedAt = userModel.CreatedAt
	return nil
}

// GetUserByID fetches a user from the database by ID. A missing user yields
// (nil, nil).
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*entity.User, error) {
	var userModel model.User
	if err := r.DB.WithContext(ctx).First(&userModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.UserModelToEntity(&userModel), nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.UserModelToEntity(&userModel), nil
}

// GetUserByUsername fetches a user by username. A missing user yields
// (nil, nil).
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.UserModelToEntity(&userModel), nil
}

// ListUsers returns one page of users ordered by ID and the total count.
func (r *UserRepository) ListUsers(ctx context.Context, page entity.Page) ([]entity.User, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.User
	if err := r.DB.WithContext(ctx).
		Order("id ASC").
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

// SetPassword stores a new password hash.
func (r *UserRepository) SetPassword(ctx context.Context, id uint, hash []byte) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hash).Error
}

// SetAvatar stores the avatar reference; an empty string clears it.
func (r *UserRepository) SetAvatar(ctx context.Context, id uint, avatar string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("avatar", avatar).Error
}
