package httpserver

import (
	"errors"
	"net/http"

	"foodnet/internal/domain"
	usersvc "foodnet/internal/service/user"

	"github.com/gin-gonic/gin"
)

func errorBody(message string) gin.H {
	return gin.H{"message": message}
}

// writeError maps domain errors to HTTP status codes. Validation and
// state conflicts are both client mistakes and come back as 400.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		body := errorBody(verr.Message)
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case domain.IsStateConflict(err):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, errorBody("already exists"))
	case errors.Is(err, usersvc.ErrInvalidCredentials), errors.Is(err, usersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, errorBody("invalid credentials"))
	default:
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}
