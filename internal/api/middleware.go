package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abubakkersiddiqq/taskflow/internal/engine"
)

// ctxUserID is the gin context key holding the authenticated user's id.
const ctxUserID = "userID"

// requireAuth verifies the bearer token and puts the owner id on the
// context. Requests without a valid credential never reach the engine.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return
	}

	userID, err := s.auth.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}

// ownerID returns the authenticated user's id set by requireAuth.
func ownerID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// respondError maps a typed engine error to its HTTP status. Unexpected
// failures get a generic message; the detail was already logged by the
// engine.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *engine.ValidationError
		conflictErr   *engine.ConflictError
		notFoundErr   *engine.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": validationErr.Error(),
			"errors":  validationErr.Fields,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": conflictErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
	}
}
