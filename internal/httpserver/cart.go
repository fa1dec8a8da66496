package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) cartView() gin.H {
	return gin.H{
		"items": h.deps.Cart.Items(),
		"total": h.deps.Cart.Total(),
	}
}

func (h *handlers) showCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
		return
	}

	// Add works off the catalog snapshot; the stock recorded there is the
	// add-time stock the cart invariant refers to.
	product, ok := h.deps.Catalog.Get(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown product"})
		return
	}
	if err := h.deps.Cart.Add(product); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity is required"})
		return
	}

	if err := h.deps.Cart.UpdateQuantity(c.Param("id"), req.Quantity); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) removeCartItem(c *gin.Context) {
	h.deps.Cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) checkout(c *gin.Context) {
	conf, err := h.deps.Cart.Checkout(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	// Stock changed server-side; the grid must reflect it.
	if err := h.deps.Catalog.Reload(c.Request.Context()); err != nil {
		h.logger.Printf("catalog reload after checkout: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"order": conf, "cart": h.cartView()})
}
