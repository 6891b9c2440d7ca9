package handlers

import (
	"net/http"

	"learning-service/internal/models"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	Companies *service.CompanyService
	Logger    *zap.Logger
}

func NewCompanyHandler(companies *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{Companies: companies, Logger: logger}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.Companies.Create(c.Request.Context(), &company)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.Companies.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.Companies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}
