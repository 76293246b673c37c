// internal/interfaces/http/handlers/promotion.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

// PromotionHandler handles promotion endpoints
type PromotionHandler struct {
	promotionService *promotion.Service
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *promotion.Service) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// ListPromotions handles GET /promotions. The public listing only
// shows active promotions; admins pass all=true for everything.
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	promotions, err := h.promotionService.ListPromotions(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve promotions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": promotions,
	})
}

// GetPromotion handles GET /promotions/:id
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	promo, err := h.promotionService.GetPromotion(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Promotion not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": promo,
	})
}

// CreatePromotion handles POST /admin/promotions
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var promo promotion.Promotion
	if err := c.ShouldBindJSON(&promo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.promotionService.CreatePromotion(&promo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Promotion created",
		"data":    promo,
	})
}

// UpdatePromotion handles PUT /admin/promotions/:id
func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	promo, err := h.promotionService.UpdatePromotion(c.Param("id"), updates)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion updated",
		"data":    promo,
	})
}

// DeletePromotion handles DELETE /admin/promotions/:id
func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	if err := h.promotionService.DeletePromotion(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion deleted",
	})
}
