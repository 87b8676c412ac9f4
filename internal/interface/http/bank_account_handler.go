package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-bank-accounts/internal/application"
	"github.com/oksasatya/go-bank-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-bank-accounts/pkg/helpers"
	"github.com/oksasatya/go-bank-accounts/pkg/response"
	"github.com/oksasatya/go-bank-accounts/pkg/validation"
)

type BankAccountHandler struct {
	Svc    *app.Service
	Logger *logrus.Logger
}

func NewBankAccountHandler(svc *app.Service, logger *logrus.Logger) *BankAccountHandler {
	return &BankAccountHandler{Svc: svc, Logger: logger}
}

type bankAccountRequest struct {
	Country       string `json:"country" binding:"required,country2,bank_country"`
	BankCode      string `json:"bank_code" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

func (r bankAccountRequest) input() app.CreateInput {
	return app.CreateInput{Country: r.Country, BankCode: r.BankCode, AccountNumber: r.AccountNumber}
}

func actorFrom(c *gin.Context) app.Actor {
	return app.Actor{
		UserID: c.GetString(middleware.CtxUserIDKey),
		Email:  c.GetString(middleware.CtxUserEmailKey),
		Name:   c.GetString(middleware.CtxUserNameKey),
	}
}

// fail maps service errors onto the response envelope.
func (h *BankAccountHandler) fail(c *gin.Context, err error, fallback string) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusUnprocessableEntity, "bank account is invalid", verr.Full)
	case errors.Is(err, app.ErrUnsupportedCountry):
		response.Error[any](c, http.StatusBadRequest, "unsupported country", nil)
	case errors.Is(err, app.ErrBankAccountNotFound):
		response.Error[any](c, http.StatusNotFound, "bank account not found", nil)
	case errors.Is(err, app.ErrExportNotConfigured):
		response.Error[any](c, http.StatusServiceUnavailable, "export is not available", nil)
	default:
		helpers.LogError(h.Logger, fallback, err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}

// Create validates and stores a bank account, answering with its masked view.
func (h *BankAccountHandler) Create(c *gin.Context) {
	var req bankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.Create(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		h.fail(c, err, "failed to create bank account")
		return
	}
	response.Success(c, http.StatusCreated, view, "bank account created", nil)
}

// Validate runs the country checks without storing anything.
func (h *BankAccountHandler) Validate(c *gin.Context) {
	var req bankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, errs, err := h.Svc.Check(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		h.fail(c, err, "failed to validate bank account")
		return
	}
	data := gin.H{"valid": errs.Empty(), "errors": errs.Full()}
	if errs.Empty() {
		data["bank_account"] = v.ToHash()
	}
	response.Success(c, http.StatusOK, data, "bank account checked", nil)
}

func (h *BankAccountHandler) List(c *gin.Context) {
	views, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "failed to list bank accounts")
		return
	}
	response.Success(c, http.StatusOK, views, "bank accounts", map[string]any{"count": len(views)})
}

func (h *BankAccountHandler) Get(c *gin.Context) {
	view, err := h.Svc.Get(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to load bank account")
		return
	}
	response.Success(c, http.StatusOK, view, "bank account", nil)
}

func (h *BankAccountHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete bank account")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "bank account deleted", nil)
}

// Search finds the user's bank accounts by routing number prefix.
// Query: q (required), size (optional, default 10, max 50)
func (h *BankAccountHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	views, err := h.Svc.Search(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), q, size)
	if err != nil {
		h.fail(c, err, "search failed")
		return
	}
	response.Success(c, http.StatusOK, views, "search results", map[string]any{"count": len(views)})
}

func (h *BankAccountHandler) Export(c *gin.Context) {
	url, err := h.Svc.Export(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "failed to export bank accounts")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"url": url}, "export ready", nil)
}
