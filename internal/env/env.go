package env

const AppName = "pdfdig"

// Set at build time via -ldflags.
var (
	Version    = "dev"
	CommitHash = "none"
	BuildTime  = "unknown"
)
