package middleware

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"cat-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by Upload.
const (
	ContextFilename  = "filename"
	ContextLatitude  = "coordLat"
	ContextLongitude = "coordLng"
)

// Upload stores the multipart "cat" file under uploadDir with a generated
// name and parses the optional lat/lng form fields into coordinates. The
// handler reads filename and location from the context, never from the body.
func Upload(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("cat")
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "required: file")
			return
		}

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Set(ContextFilename, name)

		if lat, err := strconv.ParseFloat(c.PostForm("lat"), 64); err == nil {
			c.Set(ContextLatitude, lat)
		}
		if lng, err := strconv.ParseFloat(c.PostForm("lng"), 64); err == nil {
			c.Set(ContextLongitude, lng)
		}

		c.Next()
	}
}
