package version

var (
	AppName    = "server-scribe"
	AppDevName = "server-scribe"
	AppVersion = "0.1.0"
)
