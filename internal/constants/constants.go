package constants

const (
	AppName            = "zcompgen"
	ConfigEnvVariable  = "ZCOMPGEN_CONFIG"
	ConfigDirName      = "zcompgen"
	ConfigFileName     = "config.toml"
	DefinitionsDirName = "definitions"
)
