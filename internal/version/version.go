package version

// Set at build time with -ldflags "-X github.com/fbz-tec/skytrack/internal/version.AppVersion=...".
var (
	AppVersion = "dev"
	BuildTime  = "unknown"
	GitCommit  = "none"
)
