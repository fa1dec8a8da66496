package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func (h *handlers) listCatalog(c *gin.Context) {
	if !h.deps.Catalog.Loaded() || c.Query("reload") == "1" {
		if err := h.deps.Catalog.Reload(c.Request.Context()); err != nil {
			h.writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, h.deps.Catalog.Products())
}

// requireAdmin is a UX guard only; the backend enforces authorization on
// every admin call regardless.
func (h *handlers) requireAdmin(c *gin.Context) bool {
	user, ok := h.deps.Session.Current()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "sign in required", "signInRequired": true})
		return false
	}
	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "admin access required"})
		return false
	}
	return true
}

// reloadCatalog refreshes the snapshot after a write. Admin edits never
// mutate the client-side cache directly.
func (h *handlers) reloadCatalog(c *gin.Context) {
	if err := h.deps.Catalog.Reload(c.Request.Context()); err != nil {
		h.logger.Printf("catalog reload after write: %v", err)
	}
}

func (h *handlers) createProduct(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product payload"})
		return
	}

	product, err := h.deps.Backend.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.reloadCatalog(c)
	c.JSON(http.StatusCreated, product)
}

func (h *handlers) updateProduct(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product payload"})
		return
	}

	product, err := h.deps.Backend.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.reloadCatalog(c)
	c.JSON(http.StatusOK, product)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.deps.Backend.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	h.reloadCatalog(c)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
