package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant                 = "~"
	tildeForwardSlashPrefixConstant     = "~/"
	workingDirectorySearchPathConstant  = "."
	configurationNameNormalizerConstant = "-"
)

// DirectoryProvider resolves a well-known directory such as the user's home.
type DirectoryProvider func() (string, error)

// ConfigurationPathResolver expands user supplied configuration paths and
// computes the directories searched for configuration files.
type ConfigurationPathResolver struct {
	homeDirectoryProvider          DirectoryProvider
	userConfigurationDirectoryFunc DirectoryProvider
	homeDirectory                  string
	homeDirectoryError             error
	homeDirectoryGuard             sync.Once
}

// NewConfigurationPathResolver constructs a resolver backed by the operating system lookups.
func NewConfigurationPathResolver() *ConfigurationPathResolver {
	return NewConfigurationPathResolverWithProviders(os.UserHomeDir, os.UserConfigDir)
}

// NewConfigurationPathResolverWithProviders constructs a resolver with custom directory lookups.
func NewConfigurationPathResolverWithProviders(homeDirectoryProvider DirectoryProvider, userConfigurationDirectoryProvider DirectoryProvider) *ConfigurationPathResolver {
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	if userConfigurationDirectoryProvider == nil {
		userConfigurationDirectoryProvider = os.UserConfigDir
	}
	return &ConfigurationPathResolver{
		homeDirectoryProvider:          homeDirectoryProvider,
		userConfigurationDirectoryFunc: userConfigurationDirectoryProvider,
	}
}

// Expand trims the candidate and resolves a leading tilde to the user's home directory.
func (resolver *ConfigurationPathResolver) Expand(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if resolver == nil || !strings.HasPrefix(trimmedPath, tildeSymbolConstant) {
		return trimmedPath
	}

	homeDirectory := resolver.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return trimmedPath
	}

	switch {
	case trimmedPath == tildeSymbolConstant:
		return homeDirectory
	case strings.HasPrefix(trimmedPath, tildeForwardSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(trimmedPath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(trimmedPath, tildeSymbolConstant+string(os.PathSeparator)):
		return filepath.Join(homeDirectory, strings.TrimPrefix(trimmedPath, tildeSymbolConstant+string(os.PathSeparator)))
	default:
		return trimmedPath
	}
}

// SearchPaths returns the working directory followed by the application's
// directory under the user configuration root when that root is known.
func (resolver *ConfigurationPathResolver) SearchPaths(applicationName string) []string {
	searchPaths := []string{workingDirectorySearchPathConstant}
	if resolver == nil {
		return searchPaths
	}

	normalizedName := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(applicationName)), " ", configurationNameNormalizerConstant)
	if len(normalizedName) == 0 {
		return searchPaths
	}

	userConfigurationDirectory, directoryError := resolver.userConfigurationDirectoryFunc()
	if directoryError != nil || len(userConfigurationDirectory) == 0 {
		return searchPaths
	}

	return append(searchPaths, filepath.Join(userConfigurationDirectory, normalizedName))
}

func (resolver *ConfigurationPathResolver) resolveHomeDirectory() string {
	resolver.homeDirectoryGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
