package httpserver

import (
	"net/http"

	usersvc "foodnet/internal/service/user"

	"github.com/gin-gonic/gin"
)

type tokenRequest struct {
	GrantType string `form:"grant_type" binding:"required"`
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password" binding:"required"`
}

func signupHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
			return
		}
		region := regionFrom(c)
		u, err := users.Signup(c.Request.Context(), region.ID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, userResponse{User: u})
	}
}

func tokenHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("invalid token request"))
			return
		}
		if req.GrantType != "password" {
			c.JSON(http.StatusBadRequest, errorBody("unsupported grant type"))
			return
		}
		region := regionFrom(c)
		_, access, refresh, err := users.Login(c.Request.Context(), region.ID, req.Username, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tokenResponse{
			AccessToken:  access,
			TokenType:    "Bearer",
			ExpiresIn:    users.AccessTTLSeconds(),
			RefreshToken: refresh,
		})
	}
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, userResponse{User: userFrom(c)})
}
