package httpserver

import (
	"net/http"

	"bosko-storefront/internal/guard"
	"bosko-storefront/internal/identity"
	"github.com/gin-gonic/gin"
)

// navigate answers whether the browser may open path, and where to go instead.
func (h *handlers) navigate(c *gin.Context) {
	path := c.Query("path")
	if path == "" || path[0] != '/' {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path must start with /"})
		return
	}
	decision := h.deps.Guard.Decide(path, deviceFrom(c).Session.Token(), h.deps.Now())
	c.JSON(http.StatusOK, decision)
}

type sessionResponse struct {
	SignedIn        bool               `json:"signedIn"`
	Identity        *identity.Identity `json:"identity,omitempty"`
	RememberedEmail string             `json:"rememberedEmail,omitempty"`
	Language        string             `json:"language"`
	CartCount       int                `json:"cartCount"`
	LoginPath       string             `json:"loginPath"`
}

func (h *handlers) sessionState(c *gin.Context) {
	dev := deviceFrom(c)
	ctx := c.Request.Context()
	resp := sessionResponse{
		RememberedEmail: dev.Preferences.RememberedEmail(ctx),
		Language:        string(dev.Preferences.Language(ctx)),
		CartCount:       dev.Cart.ItemCount(),
		LoginPath:       guard.LoginPath,
	}
	if id := dev.Session.Identity(); id != nil {
		resp.SignedIn = true
		resp.Identity = id
	}
	c.JSON(http.StatusOK, resp)
}
