package httpserver

import (
	"net/http"

	checkoutsvc "bosko-storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func (h *handlers) checkoutService(c *gin.Context) *checkoutsvc.Service {
	return checkoutsvc.New(h.deps.Backend.Client(deviceFrom(c).Session), h.logger)
}

func (h *handlers) checkout(c *gin.Context) {
	var in checkoutsvc.Input
	if !bindJSON(c, &in) {
		return
	}
	order, err := h.checkoutService(c).Submit(c.Request.Context(), identityFrom(c), deviceFrom(c).Cart, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) listOrders(c *gin.Context) {
	orders, err := h.checkoutService(c).History(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handlers) getOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.checkoutService(c).Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
