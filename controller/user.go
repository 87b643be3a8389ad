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

	"go.uber.org/zap"
)

const avatarImageDir = "users"

// UserController interface
type UserController interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	GetUser(ctx context.Context, id, principalID uint) (*entity.UserView, error)
	ListUsers(ctx context.Context, page entity.Page, principalID uint) ([]entity.UserView, int64, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	SetPassword(ctx context.Context, id uint, req *entity.SetPasswordRequest) error
	SetAvatar(ctx context.Context, id uint, dataURI string) (string, error)
	DeleteAvatar(ctx context.Context, id uint) error
}

// userController struct
type userController struct {
	userRepository *repository.UserRepository
	images         storage.ImageStore
	views          viewBuilder
}

// NewUserController creates and returns a new UserController
func NewUserController(userRepository *repository.UserRepository, follows *repository.FollowRepository, images storage.ImageStore) UserController {
	return &userController{
		userRepository: userRepository,
		images:         images,
		views:          viewBuilder{follows: follows},
	}
}

func passwordError(field string, problems []error) error {
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}
	return &entity.DomainError{Code: entity.CodeInvalidPassword, Fields: map[string][]string{field: msgs}}
}

// Register creates a user after checking password strength and uniqueness
// of email and username.
func (c *userController) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if problems := util.ValidatePassword(req.Password, req.Username, email, req.FirstName, req.LastName); len(problems) > 0 {
		return nil, passwordError("password", problems)
	}

	existing, err := c.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, entity.FieldError(entity.CodeUserExists, "email", "A user with this email already exists.")
	}
	existing, err = c.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, entity.FieldError(entity.CodeUserExists, "username", "A user with this username already exists.")
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}
	if err := c.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.DetailError(entity.CodeUserExists, "A user with this email or username already exists.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// GetUser retrieves a single user by ID as seen by the principal.
func (c *userController) GetUser(ctx context.Context, id, principalID uint) (*entity.UserView, error) {
	user, err := c.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, entity.DetailError(entity.CodeUserNotFound, "User not found.")
	}
	views, err := c.views.userViews(ctx, []entity.User{*user}, principalID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (c *userController) ListUsers(ctx context.Context, page entity.Page, principalID uint) ([]entity.UserView, int64, error) {
	users, total, err := c.userRepository.ListUsers(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	views, err := c.views.userViews(ctx, users, principalID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (c *userController) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// SetPassword replaces the password once the current one is confirmed.
func (c *userController) SetPassword(ctx context.Context, id uint, req *entity.SetPasswordRequest) error {
	user, err := c.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return entity.DetailError(entity.CodeUserNotFound, "User not found.")
	}
	if !util.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return entity.FieldError(entity.CodeInvalidPassword, "current_password", "Wrong password.")
	}
	if problems := util.ValidatePassword(req.NewPassword, user.Username, user.Email, user.FirstName, user.LastName); len(problems) > 0 {
		return passwordError("new_password", problems)
	}
	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return c.userRepository.SetPassword(ctx, id, hash)
}

// SetAvatar stores a data URI image as the user's avatar and returns its
// reference. The previous avatar blob is removed.
func (c *userController) SetAvatar(ctx context.Context, id uint, dataURI string) (string, error) {
	user, err := c.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", entity.DetailError(entity.CodeUserNotFound, "User not found.")
	}
	if strings.TrimSpace(dataURI) == "" {
		return "", entity.FieldError(entity.CodeEmptyImage, "avatar", "An image is required.")
	}
	image, err := util.DecodeDataURI(dataURI)
	if err != nil {
		return "", entity.FieldError(entity.CodeInvalidImage, "avatar", err.Error())
	}
	ref, err := c.images.Save(ctx, avatarImageDir, image)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	if err := c.userRepository.SetAvatar(ctx, id, ref); err != nil {
		c.discard(ctx, ref)
		return "", fmt.Errorf("set avatar: %w", err)
	}
	c.discard(ctx, user.Avatar)
	return ref, nil
}

func (c *userController) DeleteAvatar(ctx context.Context, id uint) error {
	user, err := c.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return entity.DetailError(entity.CodeUserNotFound, "User not found.")
	}
	if user.Avatar == "" {
		return entity.DetailError(entity.CodeAvatarNotSet, "No avatar is set.")
	}
	if err := c.userRepository.SetAvatar(ctx, id, ""); err != nil {
		return fmt.Errorf("clear avatar: %w", err)
	}
	c.discard(ctx, user.Avatar)
	return nil
}

func (c *userController) discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := c.images.Delete(ctx, ref); err != nil {
		logger.Warn("failed to delete avatar", zap.String("avatar", ref), zap.Error(err))
	}
}
