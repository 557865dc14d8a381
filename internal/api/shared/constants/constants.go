package constants

const (
	MAX_PAGE_SIZE              = 100
	DEFAULT_PROPERTIES_LIMIT   = 20
	DEFAULT_CHANGES_LIMIT      = 50
	MAX_CHANGES_LIMIT          = 1000
	DEFAULT_RETRY_MAX_ATTEMPTS = 5
	MAX_RETRY_MAX_ATTEMPTS     = 10
	MAX_PROPERTY_FIELD_LENGTH  = 4096
	SERVICE_NAME               = "property-registry-api"
)
