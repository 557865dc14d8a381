package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/property-registry/internal/api/middleware"
	"github.com/feral-file/property-registry/internal/api/shared/constants"
	"github.com/feral-file/property-registry/internal/api/shared/dto"
	"github.com/feral-file/property-registry/internal/api/shared/executor"
	"github.com/feral-file/property-registry/internal/domain"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetRegistryInfo returns the registry name, symbol, registrar and total supply
	// GET /api/v1/registry
	GetRegistryInfo(c *gin.Context)

	// TransferRegistrar hands the registrar capability to another identity (requires JWT)
	// PUT /api/v1/registry/registrar
	TransferRegistrar(c *gin.Context)

	// RegisterProperty registers a new property (requires JWT of the registrar)
	// POST /api/v1/properties
	RegisterProperty(c *gin.Context)

	// ListProperties lists the properties currently held by an owner
	// GET /api/v1/properties?owner=<identity>&limit=<limit>&offset=<offset>
	ListProperties(c *gin.Context)

	// GetProperty retrieves the details and current owner of a property
	// GET /api/v1/properties/:token_id
	GetProperty(c *gin.Context)

	// GetPropertyOwner retrieves the current owner of a property
	// GET /api/v1/properties/:token_id/owner
	GetPropertyOwner(c *gin.Context)

	// GetOwnershipHistory retrieves every owner of a property in acquisition order
	// GET /api/v1/properties/:token_id/history
	GetOwnershipHistory(c *gin.Context)

	// TransferProperty transfers a property (requires JWT of the current owner)
	// POST /api/v1/properties/:token_id/transfer
	TransferProperty(c *gin.Context)

	// GetChanges reads the event journal in ascending ID order
	// GET /api/v1/changes?anchor=<id>&token_id=<id>&limit=<limit>
	GetChanges(c *gin.Context)

	// CreateWebhookClient creates a new webhook client (requires authentication via API key)
	// POST /api/v1/webhooks/clients
	CreateWebhookClient(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// tokenIDParam parses the :token_id path parameter and responds on failure
func tokenIDParam(c *gin.Context) (domain.TokenID, bool) {
	raw := c.Param("token_id")
	if raw == "" {
		respondBadRequest(c, "Token ID is required")
		return 0, false
	}

	tokenID, err := domain.ParseTokenID(raw)
	if err != nil {
		respondBadRequest(c, "Invalid token ID", err.Error())
		return 0, false
	}
	return tokenID, true
}

// callerIdentity returns the authenticated caller and responds when there is none
func callerIdentity(c *gin.Context) (domain.Identity, bool) {
	caller := middleware.CallerFromContext(c)
	if caller.IsEmpty() {
		respondUnauthorized(c, "Caller identity is required")
		return "", false
	}
	return caller, true
}

func (h *handler) GetRegistryInfo(c *gin.Context) {
	response, err := h.executor.GetRegistryInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) TransferRegistrar(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.TransferRegistrarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.TransferRegistrar(c.Request.Context(), caller, req.NewRegistrar)
	if err != nil {
		respondError(c, err, zap.String("caller", caller.String()))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) RegisterProperty(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.RegisterPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	response, err := h.executor.RegisterProperty(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, zap.String("caller", caller.String()))
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handler) ListProperties(c *gin.Context) {
	queryParams, err := ParseListPropertiesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListPropertiesByOwner(c.Request.Context(), queryParams.Owner, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetProperty(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	response, err := h.executor.GetProperty(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, zap.Uint64("tokenID", uint64(tokenID)))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetPropertyOwner(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	response, err := h.executor.GetPropertyOwner(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, zap.Uint64("tokenID", uint64(tokenID)))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetOwnershipHistory(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	response, err := h.executor.GetOwnershipHistory(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, zap.Uint64("tokenID", uint64(tokenID)))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) TransferProperty(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	var req dto.TransferPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.TransferProperty(c.Request.Context(), caller, req.From, req.To, tokenID)
	if err != nil {
		respondError(c, err,
			zap.Uint64("tokenID", uint64(tokenID)),
			zap.String("caller", caller.String()))
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetChanges returns journal events after the anchor.
// Paginate by passing next_anchor from the previous page.
func (h *handler) GetChanges(c *gin.Context) {
	queryParams, err := ParseGetChangesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	tokenID, err := queryParams.TokenIDFilter()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetChanges(c.Request.Context(), queryParams.Anchor, tokenID, queryParams.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateWebhookClient creates a new webhook client (requires authentication via API key)
func (h *handler) CreateWebhookClient(c *gin.Context) {
	var req dto.CreateWebhookClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(h.debug); err != nil {
		respondError(c, err)
		return
	}

	retryMaxAttempts := constants.DEFAULT_RETRY_MAX_ATTEMPTS
	if req.RetryMaxAttempts != nil {
		retryMaxAttempts = *req.RetryMaxAttempts
	}

	response, err := h.executor.CreateWebhookClient(
		c.Request.Context(),
		req.WebhookURL,
		req.EventFilters,
		retryMaxAttempts,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.SERVICE_NAME,
	})
}
