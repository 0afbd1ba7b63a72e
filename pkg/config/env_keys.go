package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvCatalogBaseURL = "STOREFRONT_CATALOG_BASE_URL"
	EnvPageSize       = "STOREFRONT_CATALOG_PAGE_SIZE"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvCartOwnerID    = "STOREFRONT_CART_OWNER_ID"
)
