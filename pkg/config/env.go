package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "QUOTEWISE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "QUOTEWISE_APP_ENV"
	EnvPort     = "QUOTEWISE_APP_PORT"
	EnvDBDSN    = "QUOTEWISE_DB_DSN"
	EnvDBHost   = "QUOTEWISE_DB_HOST"
	EnvDBUser   = "QUOTEWISE_DB_USER"
	EnvDBName   = "QUOTEWISE_DB_NAME"
	EnvRedisURL = "QUOTEWISE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
