package identity

const (
	BrandName = "Workbench"
	// AppSlug is the canonical identifier for user-facing and on-disk state.
	// It intentionally matches the only supported CLI binary name.
	AppSlug = "workbench"
	CLIName = "workbench"

	GlobalConfigFile = "config.yml"
	StateFile        = "state.json"

	// EnvPrefix is the prefix for all environment overrides.
	EnvPrefix = "WORKBENCH"
)
