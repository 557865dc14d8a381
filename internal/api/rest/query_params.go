package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/property-registry/internal/api/shared/constants"
	"github.com/feral-file/property-registry/internal/domain"
)

// ListPropertiesQueryParams holds query parameters for GET /properties
type ListPropertiesQueryParams struct {
	Owner  string `form:"owner"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// GetChangesQueryParams holds query parameters for GET /changes
type GetChangesQueryParams struct {
	// Anchor excludes events with an ID lower than or equal to it
	Anchor  uint64  `form:"anchor,default=0"`
	TokenID *string `form:"token_id"`
	Limit   int     `form:"limit,default=50"`
}

// ParseListPropertiesQuery parses query parameters for GET /properties
func ParseListPropertiesQuery(c *gin.Context) (*ListPropertiesQueryParams, error) {
	var params ListPropertiesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = constants.DEFAULT_PROPERTIES_LIMIT
	}
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the query parameters
func (p *ListPropertiesQueryParams) Validate() error {
	if p.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}

// ParseGetChangesQuery parses query parameters for GET /changes
func ParseGetChangesQuery(c *gin.Context) (*GetChangesQueryParams, error) {
	var params GetChangesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = constants.DEFAULT_CHANGES_LIMIT
	}
	if params.Limit > constants.MAX_CHANGES_LIMIT {
		params.Limit = constants.MAX_CHANGES_LIMIT
	}

	return &params, nil
}

// TokenIDFilter returns the parsed token filter, or nil when none was given
func (p *GetChangesQueryParams) TokenIDFilter() (*domain.TokenID, error) {
	if p.TokenID == nil || *p.TokenID == "" {
		return nil, nil
	}
	tokenID, err := domain.ParseTokenID(*p.TokenID)
	if err != nil {
		return nil, err
	}
	return &tokenID, nil
}
