package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"foodnet/internal/domain"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const (
	regionCtxKey ctxKey = "region"
	userCtxKey   ctxKey = "currentUser"
)

// regionMiddleware resolves the :regionKey path segment and stores the
// region in the request context. Unknown keys end the request with 404.
func regionMiddleware(repo regionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("regionKey")
		region, err := repo.GetByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, errorBody("region not found"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("internal error"))
			return
		}
		ctx := context.WithValue(c.Request.Context(), regionCtxKey, region)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// authMiddleware validates the bearer token and stores the user in the
// request context.
func authMiddleware(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("missing bearer token"))
			return
		}
		region := regionFrom(c)
		u, err := users.LookupByToken(c.Request.Context(), region.ID, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("invalid token"))
			return
		}
		ctx := context.WithValue(c.Request.Context(), userCtxKey, u)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requireRole ends the request with 403 unless the authenticated user
// holds the role.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := userFrom(c)
		if u == nil || !u.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody("insufficient permissions"))
			return
		}
		c.Next()
	}
}

func regionFrom(c *gin.Context) *domain.Region {
	if r, ok := c.Request.Context().Value(regionCtxKey).(*domain.Region); ok {
		return r
	}
	return nil
}

func userFrom(c *gin.Context) *domain.User {
	if u, ok := c.Request.Context().Value(userCtxKey).(*domain.User); ok {
		return u
	}
	return nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
