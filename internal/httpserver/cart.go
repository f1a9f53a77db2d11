package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID int64 `json:"productId"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CartSvc.View(deviceFrom(c).Cart))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.deps.CartSvc.Add(c.Request.Context(), deviceFrom(c).Cart, req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// setCartItemQuantity removes the line when quantity is zero or less.
func (h *handlers) setCartItemQuantity(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.deps.CartSvc.SetQuantity(c.Request.Context(), deviceFrom(c).Cart, id, req.Quantity))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.deps.CartSvc.Remove(c.Request.Context(), deviceFrom(c).Cart, id))
}

func (h *handlers) clearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CartSvc.Clear(c.Request.Context(), deviceFrom(c).Cart))
}
