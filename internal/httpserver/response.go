package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

// writeError converts operation failures into the gateway's JSON error
// shape. Backend messages pass through verbatim. An auth failure on a
// protected call additionally tears the session down before responding, so
// the next render sees the logged-out state.
func (h *handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrSignInRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error(), "signInRequired": true})
	case errors.Is(err, cart.ErrStockLimit), errors.Is(err, cart.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, cart.ErrCheckoutInFlight):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, cart.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case domain.IsAuth(err):
		h.deps.Session.Logout()
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error(), "signInRequired": true})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case domain.IsNetwork(err):
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
	default:
		h.logger.Printf("unclassified error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
	}
}
