package handlers

import (
	"io"
	"net/http"

	"learning-service/internal/middleware"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxPhotoSize caps profile photos at 5 MiB.
const maxPhotoSize = 5 << 20

type ProfileHandler struct {
	Profile *service.ProfileService
	Logger  *zap.Logger
}

func NewProfileHandler(profile *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{Profile: profile, Logger: logger}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.Profile.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update accepts multipart form data: repeated "interests" fields and an
// optional "photo" file.
func (h *ProfileHandler) Update(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}

	update := service.ProfileUpdate{Interests: form.Value["interests"]}
	if files := form.File["photo"]; len(files) > 0 {
		fileHeader := files[0]
		if fileHeader.Size > maxPhotoSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 5MB limit"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		update.Photo = data
		update.PhotoType = fileHeader.Header.Get("Content-Type")
	}

	profile, err := h.Profile.Update(c.Request.Context(), middleware.UserID(c), update)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
