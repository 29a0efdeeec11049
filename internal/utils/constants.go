package utils

const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command failures.
	ApplicationExecutionFailedMessage = "snapshot execution failed"
)

// Well-known file and directory names used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file read from the snapshot root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// DefaultOutputFileName is the snapshot document written when no destination is configured.
	DefaultOutputFileName = "project_snapshot.txt"
	// ConfigFileName is the configuration file looked up locally and globally.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".snapshot"
)
