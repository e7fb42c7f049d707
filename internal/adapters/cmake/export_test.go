package cmake

var (
	ParseVersion  = parseVersion
	ConfigureArgs = configureArgs
	BuildArgs     = buildArgs
)
