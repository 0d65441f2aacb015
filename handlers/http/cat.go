package httpHandler

import (
	"net/http"
	"time"

	"cat-server/entities"
	"cat-server/middleware"
	"cat-server/usecases"
	"cat-server/utils"

	"github.com/gin-gonic/gin"
)

type CatHandler struct {
	useCase *usecases.CatUseCase
}

func NewCatHandler(useCase *usecases.CatUseCase) *CatHandler {
	return &CatHandler{useCase: useCase}
}

type catPatchRequest struct {
	CatName   string    `json:"cat_name"`
	Weight    float64   `json:"weight" binding:"omitempty,gt=0"`
	Birthdate time.Time `json:"birthdate" time_format:"2006-01-02"`
}

type ownerChangeRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// GetAllCats handles GET /api/v1/cats
func (h *CatHandler) GetAllCats(c *gin.Context) {
	cats, err := h.useCase.GetAll()
	if err != nil {
		c.Error(err)
		return
	}
	if cats == nil {
		cats = []entities.Cat{}
	}
	c.JSON(http.StatusOK, cats)
}

// GetCat handles GET /api/v1/cats/:id
func (h *CatHandler) GetCat(c *gin.Context) {
	cat, err := h.useCase.GetByID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// GetCatsByOwner handles GET /api/v1/cats/my for the authenticated caller.
func (h *CatHandler) GetCatsByOwner(c *gin.Context) {
	cats, err := h.useCase.GetByOwner(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		return
	}
	if cats == nil {
		cats = []entities.Cat{}
	}
	c.JSON(http.StatusOK, cats)
}

// GetCatsInArea handles GET /api/v1/cats/area?topRight=lat,lon&bottomLeft=lat,lon
func (h *CatHandler) GetCatsInArea(c *gin.Context) {
	cats, err := h.useCase.GetWithinBounds(c.Query("topRight"), c.Query("bottomLeft"))
	if err != nil {
		c.Error(err)
		return
	}
	if cats == nil {
		cats = []entities.Cat{}
	}
	c.JSON(http.StatusOK, cats)
}

// CreateCat handles POST /api/v1/cats. Runs behind the upload middleware;
// filename and coordinates come from the context, owner from the session.
func (h *CatHandler) CreateCat(c *gin.Context) {
	var cat entities.Cat
	if err := c.ShouldBind(&cat); err != nil {
		c.Error(utils.FromBindingError(err))
		return
	}

	cat.Filename = c.GetString(middleware.ContextFilename)
	cat.Latitude = c.GetFloat64(middleware.ContextLatitude)
	cat.Longitude = c.GetFloat64(middleware.ContextLongitude)

	if err := h.useCase.Create(&cat, c.GetString(middleware.ContextUserID)); err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cat created", cat)
}

// UpdateCat handles PUT /api/v1/cats/:id, owner only.
func (h *CatHandler) UpdateCat(c *gin.Context) {
	var req catPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.FromBindingError(err))
		return
	}

	cat, err := h.useCase.UpdateByOwner(c.Param("id"), c.GetString(middleware.ContextUserID), usecases.CatPatch{
		CatName:   req.CatName,
		Weight:    req.Weight,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cat updated", cat)
}

// DeleteCat handles DELETE /api/v1/cats/:id, owner only. Returns the deleted
// record in the envelope.
func (h *CatHandler) DeleteCat(c *gin.Context) {
	cat, err := h.useCase.DeleteByOwner(c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Cat deleted", cat)
}

// UpdateCatOwnerAdmin handles PUT /api/v1/cats/:id/owner. Admin only; the
// role gate runs in middleware.
func (h *CatHandler) UpdateCatOwnerAdmin(c *gin.Context) {
	var req ownerChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.FromBindingError(err))
		return
	}

	cat, err := h.useCase.UpdateOwnerAdmin(c.Param("id"), req.Owner, c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Cat updated", cat)
}

// DeleteCatAdmin handles DELETE /api/v1/cats/:id/admin. Admin only.
func (h *CatHandler) DeleteCatAdmin(c *gin.Context) {
	cat, err := h.useCase.DeleteAdmin(c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Cat deleted", cat)
}
