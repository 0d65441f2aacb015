package httpHandler

import (
	"net/http"
	"time"

	"cat-server/middleware"
	"cat-server/usecases"
	"cat-server/utils"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	useCase *usecases.UserUseCase
	secret  string
	ttl     time.Duration
}

func NewLoginHandler(useCase *usecases.UserUseCase, secret string, ttl time.Duration) *LoginHandler {
	return &LoginHandler{useCase: useCase, secret: secret, ttl: ttl}
}

type loginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Login authenticates credentials and issues a session token.
func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.FromBindingError(err))
		return
	}

	user, err := h.useCase.Authenticate(req.UserName, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	token, err := middleware.GenerateToken(h.secret, h.ttl, user)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, User: user.Output()})
}
