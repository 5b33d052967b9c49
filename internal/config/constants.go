// internal/config/constants.go
package config

// Application info.
const (
	AppName    = "hsk-flashcard"
	AppVersion = "1.0.0"
)

// Default settings.
const (
	DefaultHSKLevel   = 1
	DefaultPatchSize  = 10
	DefaultLogLevel   = "info"
	DefaultServerPort = ":8080"
	MinHSKLevel       = 1
	MaxHSKLevel       = 6
)

// Data file names, resolved relative to the data directory.
const (
	ConfigFileName   = "config.json"
	ProgressFileName = "progress.json"
	RevisionFileName = "revision.txt"
	HistoryFileName  = "history.db"
	ResourceDirName  = "resource"
)
