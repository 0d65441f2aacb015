package httpHandler

import (
	"net/http"

	"cat-server/entities"
	"cat-server/middleware"
	"cat-server/usecases"
	"cat-server/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	useCase *usecases.UserUseCase
}

func NewUserHandler(useCase *usecases.UserUseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

type registerRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
}

type userPatchRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=5"`
}

// GetAllUsers handles GET /api/v1/users
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.useCase.GetAll()
	if err != nil {
		c.Error(err)
		return
	}
	if users == nil {
		users = []entities.User{}
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.useCase.GetByID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/v1/users. The response never echoes the hash.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.FromBindingError(err))
		return
	}

	user, err := h.useCase.Register(req.UserName, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User created", user.Output())
}

// UpdateCurrentUser handles PUT /api/v1/users for the authenticated caller.
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	var req userPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.FromBindingError(err))
		return
	}

	user, err := h.useCase.UpdateCurrent(c.GetString(middleware.ContextUserID), usecases.UserPatch{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteCurrentUser handles DELETE /api/v1/users for the authenticated caller.
func (h *UserHandler) DeleteCurrentUser(c *gin.Context) {
	user, err := h.useCase.DeleteCurrent(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CheckToken handles GET /api/v1/users/token. Pure echo of the session
// identity; no store access.
func (h *UserHandler) CheckToken(c *gin.Context) {
	id := c.GetString(middleware.ContextUserID)
	if id == "" {
		c.Error(utils.NewForbiddenError("token not valid"))
		return
	}
	c.JSON(http.StatusOK, entities.UserOutput{
		ID:       id,
		UserName: c.GetString(middleware.ContextUserName),
		Email:    c.GetString(middleware.ContextEmail),
	})
}
