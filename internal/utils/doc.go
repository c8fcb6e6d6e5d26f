// Package utils exposes reusable helpers consumed by the defbranch commands.
//
// It houses the ConfigurationLoader, which layers embedded defaults, config
// files and DEFBRANCH_ environment variables through Viper, and the
// LoggerFactory, which builds zap loggers for the structured and console
// formats.
package utils
