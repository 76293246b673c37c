// internal/interfaces/http/handlers/promo.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/projektikatalog/jeftinoRS/internal/domain/bundle"
	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

// PromoHandler drives bundle fulfillment sessions over the cart.
type PromoHandler struct {
	cartService      *cart.Service
	catalogService   *catalog.Service
	promotionService *promotion.Service
}

// NewPromoHandler creates a new promo handler
func NewPromoHandler(cartService *cart.Service, catalogService *catalog.Service, promotionService *promotion.Service) *PromoHandler {
	return &PromoHandler{
		cartService:      cartService,
		catalogService:   catalogService,
		promotionService: promotionService,
	}
}

// productsFor returns the product pool a session selects from. Slot
// promotions filter per step across the whole store; quantity and
// categorical promotions only ever see the products tagged with the
// promotion's id.
func (h *PromoHandler) productsFor(promo *promotion.Promotion) []catalog.Product {
	if promo == nil {
		return nil
	}
	var (
		products []catalog.Product
		err      error
	)
	if promo.EffectiveMode() == promotion.ModeSlots {
		products, err = h.catalogService.ListAvailable()
	} else {
		products, err = h.catalogService.ListEligible(promo.ID)
	}
	if err != nil {
		return nil
	}
	return products
}

func (h *PromoHandler) resume(state *cart.State) *bundle.Session {
	return bundle.Resume(state, h.productsFor(state.ActivePromotion))
}

type promoSessionResponse struct {
	Session bundle.Progress `json:"session"`
	Cart    *CartView       `json:"cart"`
}

func sessionResponse(s *bundle.Session, state *cart.State) promoSessionResponse {
	return promoSessionResponse{
		Session: s.ProgressSnapshot(),
		Cart:    buildCartView(state),
	}
}

// StartRequest opens a fulfillment session.
type StartRequest struct {
	PromotionID string `json:"promotion_id" binding:"required"`
	Step        int    `json:"step"`
}

// Start handles POST /promo/start
func (h *PromoHandler) Start(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	promo, err := h.promotionService.GetActivePromotion(req.PromotionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Promotion not found or inactive",
		})
		return
	}

	products := h.productsFor(promo)

	var session *bundle.Session
	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		session = bundle.Start(s, promo, products, req.Step)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start promotion session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sessionResponse(session, state),
	})
}

// GetSession handles GET /promo/session
func (h *PromoHandler) GetSession(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	state := h.cartService.Load(c.Request.Context(), sessionID)

	session := h.resume(state)
	if session == nil {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"session": nil,
				"cart":    buildCartView(state),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sessionResponse(session, state),
	})
}

// StepProducts handles GET /promo/steps/:index/products
func (h *PromoHandler) StepProducts(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	step, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid step index",
		})
		return
	}

	state := h.cartService.Load(c.Request.Context(), sessionID)
	session := h.resume(state)
	if session == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No active promotion session",
		})
		return
	}

	products := session.EligibleProducts(step)
	if products == nil {
		products = []catalog.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
	})
}

// SelectRequest picks a product for a slot.
type SelectRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Variant   string `json:"variant"`
}

// SelectForStep handles POST /promo/steps/:index/select
func (h *PromoHandler) SelectForStep(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	step, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid step index",
		})
		return
	}

	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.GetProduct(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	variant := product.FindVariant(req.Variant)

	var session *bundle.Session
	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		session = h.resume(s)
		if session == nil {
			return errNoSession
		}
		if !session.Eligible(step, *product) {
			return errNotEligible
		}
		session.SelectForStep(step, *product, req.Size, variant)
		return nil
	})
	if err != nil {
		h.respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sessionResponse(session, state),
	})
}

// RemoveStepItem handles DELETE /promo/steps/:index
func (h *PromoHandler) RemoveStepItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	step, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid step index",
		})
		return
	}

	var session *bundle.Session
	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		session = h.resume(s)
		if session == nil {
			return errNoSession
		}
		session.RemoveStepItem(step)
		return nil
	})
	if err != nil {
		h.respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sessionResponse(session, state),
	})
}

// AddQuantityItem handles POST /promo/items
func (h *PromoHandler) AddQuantityItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := h.catalogService.GetProduct(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	variant := product.FindVariant(req.Variant)

	var session *bundle.Session
	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		session = h.resume(s)
		if session == nil {
			return errNoSession
		}
		if !session.EligibleAnyStep(*product) {
			return errNotEligible
		}
		session.AddQuantityItem(*product, req.Size, variant, req.Quantity)
		return nil
	})
	if err != nil {
		h.respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sessionResponse(session, state),
	})
}

// RemoveQuantityItem handles DELETE /promo/items
func (h *PromoHandler) RemoveQuantityItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var session *bundle.Session
	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		session = h.resume(s)
		if session == nil {
			return errNoSession
		}
		session.RemoveQuantityItem(req.ProductID, req.Size)
		return nil
	})
	if err != nil {
		h.respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sessionResponse(session, state),
	})
}

// NavigateRequest carries the client's current step.
type NavigateRequest struct {
	Step int `json:"step"`
}

// Navigate handles POST /promo/navigate/:direction with direction
// "next" or "prev". The step pointer is bounded on both ends.
func (h *PromoHandler) Navigate(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	direction := c.Param("direction")
	if direction != "next" && direction != "prev" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown navigation direction",
		})
		return
	}

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state := h.cartService.Load(c.Request.Context(), sessionID)
	session := h.resume(state)
	if session == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No active promotion session",
		})
		return
	}

	session.SetStep(req.Step)
	moved := false
	if direction == "next" {
		moved = session.Next()
	} else {
		moved = session.Prev()
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"session": session.ProgressSnapshot(),
			"moved":   moved,
		},
	})
}

// RemoveBundle handles DELETE /promo/bundles/:id
func (h *PromoHandler) RemoveBundle(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	bundleID := c.Param("id")

	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		s.RemoveBundle(bundleID)
		if s.ActivePromotion != nil && s.ActivePromotion.ID == bundleID {
			s.ActivePromotion = nil
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove bundle",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bundle removed",
		"data":    buildCartView(state),
	})
}

// Cancel handles DELETE /promo/session: abandons the active promotion
// and discards its items.
func (h *PromoHandler) Cancel(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		if s.ActivePromotion != nil {
			s.RemoveBundle(s.ActivePromotion.ID)
			s.ActivePromotion = nil
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to cancel promotion session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion session cancelled",
		"data":    buildCartView(state),
	})
}
