package handlers

import (
	"fmt"
	"net/http"

	"learning-service/internal/middleware"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CertificateHandler struct {
	Certificates *service.CertificateService
	Logger       *zap.Logger
}

func NewCertificateHandler(certificates *service.CertificateService, logger *zap.Logger) *CertificateHandler {
	return &CertificateHandler{Certificates: certificates, Logger: logger}
}

// Download streams the rendered certificate PNG.
func (h *CertificateHandler) Download(c *gin.Context) {
	courseID := c.Param("id")
	png, err := h.Certificates.Generate(c.Request.Context(), middleware.UserID(c), courseID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=certificate-%s.png", courseID))
	c.Data(http.StatusOK, "image/png", png)
}

// Store renders and persists the certificate, returning its storage path.
func (h *CertificateHandler) Store(c *gin.Context) {
	path, err := h.Certificates.GenerateAndStore(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}
