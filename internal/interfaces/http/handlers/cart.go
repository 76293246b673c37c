// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	catalogService *catalog.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, catalogService *catalog.Service) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// getOrCreateSessionID resolves the caller's cart session, minting a
// new one when the header is absent. The ID is echoed back so the
// client can persist it.
func getOrCreateSessionID(c *gin.Context) string {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	c.Header("X-Session-ID", sessionID)
	return sessionID
}

// CartView is the cart response payload with derived totals.
type CartView struct {
	Items           []cart.Line `json:"items"`
	PromoItems      []cart.Line `json:"promo_items"`
	ActivePromotion interface{} `json:"active_promotion,omitempty"`
	TotalItems      int         `json:"total_items"`
	TotalPrice      int64       `json:"total_price"`
	ShippingCost    int64       `json:"shipping_cost"`
	GrandTotal      int64       `json:"grand_total"`
}

func buildCartView(state *cart.State) *CartView {
	view := &CartView{
		Items:        state.Items,
		PromoItems:   state.PromoItems,
		TotalItems:   state.TotalItemCount(),
		TotalPrice:   state.TotalPrice(),
		ShippingCost: state.ShippingCost(),
	}
	view.GrandTotal = view.TotalPrice + view.ShippingCost
	if state.ActivePromotion != nil {
		view.ActivePromotion = state.ActivePromotion
	}
	if view.Items == nil {
		view.Items = []cart.Line{}
	}
	if view.PromoItems == nil {
		view.PromoItems = []cart.Line{}
	}
	return view
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	state := h.cartService.Load(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"data": buildCartView(state),
	})
}

// AddItemRequest is the add-to-cart payload.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
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
	if !product.Available {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Product is not available",
		})
		return
	}

	variant := product.FindVariant(req.Variant)
	if req.Variant != "" && variant == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown product variant",
		})
		return
	}

	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		s.AddLine(*product, req.Size, req.Quantity, variant, nil)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    buildCartView(state),
	})
}

// UpdateItemRequest is the quantity-update payload.
type UpdateItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// UpdateItem handles PUT /cart/items
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		s.UpdateQuantity(req.ProductID, req.Size, req.Quantity)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data":    buildCartView(state),
	})
}

// RemoveItemRequest identifies the line to remove.
type RemoveItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
}

// RemoveItem handles DELETE /cart/items
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.cartService.Mutate(c.Request.Context(), sessionID, func(s *cart.State) error {
		s.RemoveLine(req.ProductID, req.Size)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    buildCartView(state),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	h.cartService.Clear(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
