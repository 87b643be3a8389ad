package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func statusFor(code entity.ErrorCode) int {
	switch code {
	case entity.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case entity.CodeNotRecipeAuthor:
		return http.StatusForbidden
	case entity.CodeRecipeNotFound, entity.CodeUserNotFound, entity.CodeProductNotFound,
		entity.CodeTagNotFound, entity.CodeAvatarNotSet:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func domainBody(de *entity.DomainError) gin.H {
	if len(de.Fields) == 0 {
		detail := de.Detail
		if detail == "" {
			detail = string(de.Code)
		}
		return gin.H{"detail": detail}
	}
	body := gin.H{}
	for field, msgs := range de.Fields {
		body[field] = msgs
	}
	return body
}

// respondError writes err as a JSON error response. Domain errors keep their
// field messages; anything else is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	var de *entity.DomainError
	if errors.As(err, &de) {
		c.JSON(statusFor(de.Code), domainBody(de))
		return
	}
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
}

// respondBindError reports a failed ShouldBind* call.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body := gin.H{}
		for field, msgs := range validationFields(verrs) {
			body[field] = msgs
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, gin.H{typeErr.Field: []string{"Invalid type."}})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
}
