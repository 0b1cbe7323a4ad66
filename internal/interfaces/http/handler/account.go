package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appplatform "github.com/ofauto/backend/internal/application/platform"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/interfaces/http/dto"
)

// AccountHandler handles platform account endpoints
type AccountHandler struct {
	BaseHandler
	accounts *appplatform.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts *appplatform.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// ConnectAccountRequest is the payload for connecting a platform account
type ConnectAccountRequest struct {
	Kind           string `json:"kind" binding:"required"`
	DisplayName    string `json:"display_name" binding:"required"`
	CredentialsRef string `json:"credentials_ref" binding:"required"`
}

// RotateCredentialsRequest is the payload for swapping an account's
// credential reference
type RotateCredentialsRequest struct {
	CredentialsRef string `json:"credentials_ref" binding:"required"`
}

// AccountResponse is the outward view of a platform account. The
// credential reference never leaves the service.
type AccountResponse struct {
	ID          uuid.UUID     `json:"id"`
	Kind        platform.Kind `json:"kind"`
	DisplayName string        `json:"display_name"`
	Active      bool          `json:"active"`
	SupportsDMs bool          `json:"supports_dms"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func toAccountResponse(a *platform.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Kind:        a.PlatformKind,
		DisplayName: a.DisplayName,
		Active:      a.Active,
		SupportsDMs: a.SupportsDMs(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ConnectAccount connects a new platform account
func (h *AccountHandler) ConnectAccount(c *gin.Context) {
	var req ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accounts.ConnectAccount(c.Request.Context(), platform.Kind(req.Kind), req.DisplayName, req.CredentialsRef)
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Created(c, toAccountResponse(account))
}

// ListAccounts lists active accounts, optionally filtered by kind
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var (
		accounts []platform.Account
		err      error
	)
	if kind := c.Query("kind"); kind != "" {
		accounts, err = h.accounts.ListAccountsByKind(c.Request.Context(), platform.Kind(kind))
	} else {
		accounts, err = h.accounts.ListActiveAccounts(c.Request.Context())
	}
	if err != nil {
		h.PlatformError(c, err)
		return
	}

	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	h.Success(c, out)
}

// GetAccount returns one account by ID
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := h.accountID(c)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, toAccountResponse(account))
}

// RotateCredentials swaps the account's credential reference and drops
// its cached client
func (h *AccountHandler) RotateCredentials(c *gin.Context) {
	id, ok := h.accountID(c)
	if !ok {
		return
	}

	var req RotateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.accounts.RotateCredentials(c.Request.Context(), id, req.CredentialsRef); err != nil {
		h.PlatformError(c, err)
		return
	}
	h.NoContent(c)
}

// DisconnectAccount deactivates the account and drops its cached client
func (h *AccountHandler) DisconnectAccount(c *gin.Context) {
	id, ok := h.accountID(c)
	if !ok {
		return
	}

	if err := h.accounts.DisconnectAccount(c.Request.Context(), id); err != nil {
		h.PlatformError(c, err)
		return
	}
	h.NoContent(c)
}

// accountID binds and parses the :id path parameter
func (h *AccountHandler) accountID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "invalid account ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers account routes on the API group
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.ConnectAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id/credentials", h.RotateCredentials)
		accounts.DELETE("/:id", h.DisconnectAccount)
	}
}
