package domain

const (
	// Registry metadata defaults
	DEFAULT_REGISTRY_NAME   = "RealEstateToken"
	DEFAULT_REGISTRY_SYMBOL = "RET"

	// ZERO_ADDRESS is never a valid owner
	ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
