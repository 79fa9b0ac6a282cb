package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/admin/model"
	"book-inventory/internal/domains/admin/service"
	"book-inventory/internal/shared/middleware"
	"book-inventory/internal/shared/response"
	"book-inventory/internal/shared/utils"
)

type AdminHandler struct {
	service      service.Service
	tokens       middleware.AdminTokenValidator
	secureCookie bool
}

func NewAdminHandler(svc service.Service, tokens middleware.AdminTokenValidator, secureCookie bool) *AdminHandler {
	return &AdminHandler{service: svc, tokens: tokens, secureCookie: secureCookie}
}

// ════════════════════════════════════════════════════════════════
// LOGIN: POST /v1/admin/login
// ════════════════════════════════════════════════════════════════

func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), c.ClientIP(), req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AdminCookieName,
		token,
		int(h.service.SessionTTL().Seconds()),
		"/",
		"",
		h.secureCookie,
		true,
	)

	response.Success(c, http.StatusOK, "Login successful", model.LoginResponse{
		Redirect: utils.SafeRedirect(req.Redirect),
	})
}

// Logout - POST /v1/admin/logout, clears the session cookie
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookieName, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// Status - GET /v1/admin/status
func (h *AdminHandler) Status(c *gin.Context) {
	response.Success(c, http.StatusOK, "Success", model.StatusResponse{
		Admin: middleware.IsAdmin(c, h.tokens),
	})
}

// Page - GET /admin, the target RequireAdmin redirects browsers to.
// An existing session goes straight on to ?redirect=.
func (h *AdminHandler) Page(c *gin.Context) {
	if redirect := c.Query("redirect"); redirect != "" && middleware.IsAdmin(c, h.tokens) {
		c.Redirect(http.StatusFound, utils.SafeRedirect(redirect))
		return
	}
	h.Status(c)
}

func (h *AdminHandler) fail(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Msg("[AdminHandler] login failed")
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
