package handler

import (
	"net/http"
	"strconv"

	"github.com/RomanKim94/foodgram/controller"
	"github.com/RomanKim94/foodgram/entity"

	"github.com/gin-gonic/gin"
)

var errUserMissing = entity.DetailError(entity.CodeUserNotFound, "User not found.")

type UserHandler interface {
	Create(c *gin.Context)
	ListUsers(c *gin.Context)
	GetUser(c *gin.Context)
	Me(c *gin.Context)
	SetPassword(c *gin.Context)
	SetAvatar(c *gin.Context)
	DeleteAvatar(c *gin.Context)
	Subscriptions(c *gin.Context)
	Subscribe(c *gin.Context)
	Unsubscribe(c *gin.Context)
}

type userHandler struct {
	userController   controller.UserController
	followController controller.FollowController
	paginator        Paginator
}

func NewUserHandler(userController controller.UserController, followController controller.FollowController, paginator Paginator) UserHandler {
	return &userHandler{
		userController:   userController,
		followController: followController,
		paginator:        paginator,
	}
}

// recipesLimit reads ?recipes_limit=; absent or invalid means no limit.
func recipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// Create registers a new user
func (h *userHandler) Create(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userController.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

func (h *userHandler) ListUsers(c *gin.Context) {
	page := h.paginator.Page(c)
	users, total, err := h.userController.ListUsers(c.Request.Context(), page, principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.paginator.Respond(c, page, total, users)
}

// GetUser handles fetching a specific user by ID
func (h *userHandler) GetUser(c *gin.Context) {
	id, ok := idParam(c, "id", errUserMissing)
	if !ok {
		return
	}
	user, err := h.userController.GetUser(c.Request.Context(), id, principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) Me(c *gin.Context) {
	me := principalID(c)
	user, err := h.userController.GetUser(c.Request.Context(), me, me)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) SetPassword(c *gin.Context) {
	var req entity.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.userController.SetPassword(c.Request.Context(), principalID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *userHandler) SetAvatar(c *gin.Context) {
	var req entity.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	avatar, err := h.userController.SetAvatar(c.Request.Context(), principalID(c), req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": avatar})
}

func (h *userHandler) DeleteAvatar(c *gin.Context) {
	if err := h.userController.DeleteAvatar(c.Request.Context(), principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *userHandler) Subscriptions(c *gin.Context) {
	page := h.paginator.Page(c)
	authors, total, err := h.followController.Subscriptions(c.Request.Context(), principalID(c), page, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.paginator.Respond(c, page, total, authors)
}

func (h *userHandler) Subscribe(c *gin.Context) {
	id, ok := idParam(c, "id", errUserMissing)
	if !ok {
		return
	}
	view, err := h.followController.ToggleFollow(c.Request.Context(), principalID(c), id, entity.Add, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *userHandler) Unsubscribe(c *gin.Context) {
	id, ok := idParam(c, "id", errUserMissing)
	if !ok {
		return
	}
	if _, err := h.followController.ToggleFollow(c.Request.Context(), principalID(c), id, entity.Remove, 0); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
