package httpserver

import (
	"net/http"

	"bosko-storefront/internal/api"
	"bosko-storefront/internal/domain"
	customersvc "bosko-storefront/internal/service/customer"
	"github.com/gin-gonic/gin"
)

// customer builds the account service bound to the calling device's session.
func (h *handlers) customer(c *gin.Context) *customersvc.Service {
	dev := deviceFrom(c)
	return customersvc.New(h.deps.Backend.Client(dev.Session), dev.Session, dev.Preferences)
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type languageRequest struct {
	Language string `json:"language"`
}

func (h *handlers) login(c *gin.Context) {
	var in customersvc.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.customer(c).Login(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) register(c *gin.Context) {
	var in customersvc.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.customer(c).Register(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *handlers) googleLogin(c *gin.Context) {
	var req googleLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.customer(c).GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.customer(c).ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *handlers) resetPassword(c *gin.Context) {
	var in customersvc.ResetInput
	if !bindJSON(c, &in) {
		return
	}
	msg, err := h.customer(c).ResetPassword(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *handlers) logout(c *gin.Context) {
	h.customer(c).Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *handlers) getPreferences(c *gin.Context) {
	prefs := deviceFrom(c).Preferences
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"language":        prefs.Language(ctx),
		"rememberedEmail": prefs.RememberedEmail(ctx),
	})
}

func (h *handlers) updatePreferences(c *gin.Context) {
	var req languageRequest
	if !bindJSON(c, &req) {
		return
	}
	lang, err := deviceFrom(c).Preferences.SetLanguage(c.Request.Context(), req.Language)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

func (h *handlers) getProfile(c *gin.Context) {
	user, err := h.customer(c).Profile(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) updateProfile(c *gin.Context) {
	var in api.ProfileUpdate
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.customer(c).UpdateProfile(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) listAddresses(c *gin.Context) {
	addresses, err := h.customer(c).Addresses(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *handlers) createAddress(c *gin.Context) {
	var in domain.Address
	if !bindJSON(c, &in) {
		return
	}
	addr, err := h.customer(c).SaveAddress(c.Request.Context(), 0, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

func (h *handlers) updateAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.Address
	if !bindJSON(c, &in) {
		return
	}
	addr, err := h.customer(c).SaveAddress(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (h *handlers) deleteAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.customer(c).DeleteAddress(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setDefaultAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	addr, err := h.customer(c).SetDefaultAddress(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}
