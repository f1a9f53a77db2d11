package httpserver

import (
	"net/http"

	"bosko-storefront/internal/domain"
	adminsvc "bosko-storefront/internal/service/admin"
	"github.com/gin-gonic/gin"
)

// Role checks for these routes happen in guardMiddleware.
func (h *handlers) admin(c *gin.Context) *adminsvc.Service {
	return adminsvc.New(h.deps.Backend.Client(deviceFrom(c).Session))
}

type roleRequest struct {
	Role string `json:"role"`
}

func (h *handlers) adminStats(c *gin.Context) {
	stats, err := h.admin(c).Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handlers) adminListProducts(c *gin.Context) {
	page, err := h.admin(c).Products(c.Request.Context(), listQuery(c, "categoryId", "inStock", "minPrice", "maxPrice"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) adminGetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.admin(c).Product(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	var in domain.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.admin(c).CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.admin(c).UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.admin(c).DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminListCategories(c *gin.Context) {
	categories, err := h.admin(c).Categories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handlers) adminCreateCategory(c *gin.Context) {
	var in domain.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	category, err := h.admin(c).CreateCategory(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *handlers) adminUpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	category, err := h.admin(c).UpdateCategory(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *handlers) adminDeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.admin(c).DeleteCategory(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminListUsers(c *gin.Context) {
	page, err := h.admin(c).Users(c.Request.Context(), listQuery(c, "role", "isActive"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) adminGetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.admin(c).User(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) adminUpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UserUpdate
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.admin(c).UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) adminChangeUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.admin(c).ChangeUserRole(c.Request.Context(), id, req.Role); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminToggleUserStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.admin(c).ToggleUserStatus(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminDeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.admin(c).DeleteUser(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminListOrders(c *gin.Context) {
	list, err := h.admin(c).Orders(c.Request.Context(), listQuery(c, "status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) adminGetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.admin(c).Order(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) adminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.OrderStatusUpdate
	if !bindJSON(c, &in) {
		return
	}
	if err := h.admin(c).UpdateOrderStatus(c.Request.Context(), id, in); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
