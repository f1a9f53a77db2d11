package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bosko-storefront/internal/api"
	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/guard"
	cartsvc "bosko-storefront/internal/service/cart"
	checkoutsvc "bosko-storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

// writeError maps service and backend failures onto responses the browser
// can show as-is.
func (h *handlers) writeError(c *gin.Context, err error) {
	var verr *api.ValidationError
	var serr *api.ServerError
	switch {
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, checkoutsvc.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    api.UserMessage(err),
			"redirect": guard.LoginPath + "?returnUrl=" + url.QueryEscape(guard.StripAPIPrefix(c.Request.URL.Path)),
		})
	case errors.Is(err, api.ErrUnreachable):
		c.JSON(http.StatusBadGateway, gin.H{"error": api.UserMessage(err)})
	case errors.As(err, &verr):
		status := verr.Status
		if status < 400 {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": verr.Error(), "messages": verr.Messages()})
	case errors.As(err, &serr):
		c.JSON(http.StatusBadGateway, gin.H{"error": api.UserMessage(err)})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, cartsvc.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// listQuery reads paging and sorting plus the named filters from the query string.
func listQuery(c *gin.Context, filters ...string) api.ListQuery {
	q := api.ListQuery{
		Search: c.Query("search"),
		SortBy: c.Query("sortBy"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PageSize, _ = strconv.Atoi(c.Query("pageSize"))
	q.SortDescending, _ = strconv.ParseBool(c.Query("sortDescending"))
	for _, name := range filters {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[name] = v
		}
	}
	return q
}
