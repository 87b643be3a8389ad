package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RomanKim94/foodgram/controller"
	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/util"
)

// AuthService interface
type AuthService interface {
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Authenticate(token string) (uint, error)
}

// authService struct
type authService struct {
	userController controller.UserController
	jwtSecretKey   []byte
	tokenTTL       time.Duration
}

// NewAuthService creates and returns a new AuthService
func NewAuthService(userController controller.UserController, config *entity.Config) AuthService {
	return &authService{
		userController: userController,
		jwtSecretKey:   config.JWTSecretKey(),
		tokenTTL:       config.TokenTTL,
	}
}

// Login checks the credentials and issues a signed token.
func (a *authService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := a.userController.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("get user: %w", err)
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil || !util.CheckPasswordHash(password, user.Password) {
		return nil, "", entity.DetailError(entity.CodeInvalidCredentials, "Unable to log in with provided credentials.")
	}

	token, err := util.GenerateJWT(user.ID, user.Email, a.jwtSecretKey, a.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Authenticate validates a token and returns the user it was issued to.
func (a *authService) Authenticate(token string) (uint, error) {
	claims, err := util.ValidateJWT(token, a.jwtSecretKey)
	if err != nil {
		return 0, entity.DetailError(entity.CodeInvalidCredentials, "Invalid or expired token.")
	}
	return claims.UserID, nil
}
