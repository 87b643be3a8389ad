package handler

import (
	"strconv"

	"github.com/RomanKim94/foodgram/entity"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the authenticated user ID.
const PrincipalKey = "userID"

// principalID returns the authenticated user, or 0 for anonymous requests.
func principalID(c *gin.Context) uint {
	if v, ok := c.Get(PrincipalKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// idParam parses a positive integer path parameter. A malformed value cannot
// name a stored row, so it is reported with notFound.
func idParam(c *gin.Context, name string, notFound *entity.DomainError) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, notFound)
		return 0, false
	}
	return uint(id), true
}
