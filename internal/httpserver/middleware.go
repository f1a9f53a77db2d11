package httpserver

import (
	"log"
	"net/http"
	"time"

	"bosko-storefront/internal/guard"
	"bosko-storefront/internal/identity"
	"bosko-storefront/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	deviceCookie    = "bosko_device"
	requestIDHeader = "X-Request-ID"

	ctxDevice   = "device"
	ctxIdentity = "identity"
)

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// deviceMiddleware resolves the device cookie, issuing a fresh id when the
// cookie is missing or not one we could have issued.
func deviceMiddleware(issuer deviceIssuer, devices *session.Registry, secure bool, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(deviceCookie)
		id, err := issuer.Validate(raw)
		if err != nil {
			id, err = issuer.Issue()
			if err != nil {
				logger.Printf("[api] issue device id: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to issue device id"})
				return
			}
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(deviceCookie, id, issuer.CookieTTLSeconds(), "/", "", secure, true)

		dev, err := devices.Device(c.Request.Context(), id)
		if err != nil {
			logger.Printf("[api] load device: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load device"})
			return
		}
		c.Set(ctxDevice, dev)
		c.Next()
	}
}

// guardMiddleware applies the navigation guard to the API path each request
// serves. Blocked requests get the redirect the page would have received.
func guardMiddleware(g *guard.Guard, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		dev := deviceFrom(c)
		requested := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			requested += "?" + c.Request.URL.RawQuery
		}
		decision := g.DecideAPI(requested, dev.Session.Token(), now())
		switch decision.Outcome {
		case guard.RedirectToLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required", "redirect": decision.Location})
			return
		case guard.RedirectToForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied", "redirect": decision.Location})
			return
		}
		if decision.Identity != nil {
			c.Set(ctxIdentity, decision.Identity)
		}
		c.Next()
	}
}

func deviceFrom(c *gin.Context) *session.Device {
	return c.MustGet(ctxDevice).(*session.Device)
}

// identityFrom prefers the identity the guard already validated.
func identityFrom(c *gin.Context) *identity.Identity {
	if v, ok := c.Get(ctxIdentity); ok {
		return v.(*identity.Identity)
	}
	return deviceFrom(c).Session.Identity()
}
