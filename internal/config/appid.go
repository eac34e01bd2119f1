package config

const (
	// AppID is the fixed identifier used for config and log file paths.
	// Keep it stable even if the display name changes.
	AppID = "nestform"
)
