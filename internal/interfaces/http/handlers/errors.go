// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errNoSession   = errors.New("no active promotion session")
	errNotEligible = errors.New("product is not eligible for this step")
)

func (h *PromoHandler) respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNoSession):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No active promotion session",
		})
	case errors.Is(err, errNotEligible):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Product is not eligible for this step",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update promotion session",
		})
	}
}
