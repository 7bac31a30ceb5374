package certificates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isoplatform/certification-api/internal/auth"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	certs := rg.Group("/certificates")
	{
		certs.POST("/issue", h.Issue)
		certs.GET("/:vin", h.GetByVIN)
	}
}

func (h *Handler) Issue(c *gin.Context) {
	var body IssueCertificateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := body.Validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issuedBy := auth.CallerIdentity(c)
	h.logger.Info("certificate issuance requested",
		zap.String("vin", req.VIN),
		zap.String("issued_by", issuedBy))

	cert, err := h.service.Issue(c.Request.Context(), req, issuedBy)
	if errors.Is(err, ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		// diagnostic detail stays in the logs, the caller gets an
		// opaque server error
		h.logger.Error("issue certificate", zap.String("vin", req.VIN), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toResponse(cert))
}

func (h *Handler) GetByVIN(c *gin.Context) {
	vin := c.Param("vin")

	cert, err := h.service.GetByVIN(c.Request.Context(), vin)
	if err != nil {
		h.logger.Error("get certificate", zap.String("vin", vin), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if cert == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "certificate not found"})
		return
	}

	c.JSON(http.StatusOK, toResponse(cert))
}
