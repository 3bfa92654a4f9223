package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// RENTLEDGER_* names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN         = "RENTLEDGER_DB_DSN"
	EnvDBHost        = "RENTLEDGER_DB_HOST"
	EnvDBUser        = "RENTLEDGER_DB_USER"
	EnvDBName        = "RENTLEDGER_DB_NAME"
	EnvAdminIdentity = "RENTLEDGER_ADMIN_IDENTITY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
