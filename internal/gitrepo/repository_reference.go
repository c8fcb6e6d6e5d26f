package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshProtocolPrefixConstant        = "ssh://"
	httpsProtocolPrefixConstant      = "https://"
	sshUserDelimiterConstant         = "@"
	sshPathDelimiterConstant         = ":"
	pathSeparatorConstant            = "/"
	gitSuffixConstant                = ".git"
	referenceErrorTemplateConstant   = "%q: %s"
	requiredValueMessageConstant     = "repository reference is required"
	invalidReferenceMessageConstant  = "expected owner/repository or a GitHub remote url"
	unsupportedHostTemplateConstant  = "unsupported host %s"
	defaultHostConstant              = "github.com"
	fullNameTemplateConstant         = "%s/%s"
	minimumHTTPSPathSegmentsConstant = 3
)

// RepositoryReference identifies a GitHub repository by owner and name.
type RepositoryReference struct {
	Owner string
	Name  string
}

// FullName renders the reference as owner/name.
func (reference RepositoryReference) FullName() string {
	return fmt.Sprintf(fullNameTemplateConstant, reference.Owner, reference.Name)
}

// InvalidReferenceError indicates a repository reference could not be parsed.
type InvalidReferenceError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (referenceError InvalidReferenceError) Error() string {
	return fmt.Sprintf(referenceErrorTemplateConstant, referenceError.Input, referenceError.Message)
}

// ParseRepositoryReference accepts owner/name, https://github.com/owner/name,
// git@github.com:owner/name.git and ssh://git@github.com/owner/name.git.
func ParseRepositoryReference(value string) (RepositoryReference, error) {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return RepositoryReference{}, InvalidReferenceError{Input: value, Message: requiredValueMessageConstant}
	}

	switch {
	case strings.HasPrefix(trimmedValue, httpsProtocolPrefixConstant):
		return parseHTTPSReference(value, strings.TrimPrefix(trimmedValue, httpsProtocolPrefixConstant))
	case strings.HasPrefix(trimmedValue, sshProtocolPrefixConstant):
		return parseSSHReference(value, strings.TrimPrefix(trimmedValue, sshProtocolPrefixConstant))
	case strings.Contains(trimmedValue, sshUserDelimiterConstant):
		return parseSSHReference(value, trimmedValue)
	default:
		return splitOwnerAndName(value, trimmedValue)
	}
}

// ParseOwnedRepositoryReference behaves like ParseRepositoryReference but
// treats a bare repository name as belonging to defaultOwner when it is set.
func ParseOwnedRepositoryReference(value string, defaultOwner string) (RepositoryReference, error) {
	trimmedValue := strings.TrimSpace(value)
	trimmedOwner := strings.TrimSpace(defaultOwner)
	if len(trimmedOwner) == 0 || len(trimmedValue) == 0 || strings.ContainsAny(trimmedValue, pathSeparatorConstant+sshUserDelimiterConstant+sshPathDelimiterConstant) {
		return ParseRepositoryReference(value)
	}
	return splitOwnerAndName(value, trimmedOwner+pathSeparatorConstant+trimmedValue)
}

func parseHTTPSReference(input string, remainder string) (RepositoryReference, error) {
	pathSegments := strings.Split(strings.TrimSuffix(remainder, pathSeparatorConstant), pathSeparatorConstant)
	if len(pathSegments) != minimumHTTPSPathSegmentsConstant {
		return RepositoryReference{}, InvalidReferenceError{Input: input, Message: invalidReferenceMessageConstant}
	}
	if hostError := requireGitHubHost(input, pathSegments[0]); hostError != nil {
		return RepositoryReference{}, hostError
	}
	return splitOwnerAndName(input, strings.Join(pathSegments[1:], pathSeparatorConstant))
}

func parseSSHReference(input string, remainder string) (RepositoryReference, error) {
	_, hostAndPath, hasUser := strings.Cut(remainder, sshUserDelimiterConstant)
	if !hasUser {
		return RepositoryReference{}, InvalidReferenceError{Input: input, Message: invalidReferenceMessageConstant}
	}

	host, path, hasPath := strings.Cut(hostAndPath, sshPathDelimiterConstant)
	if !hasPath {
		host, path, hasPath = strings.Cut(hostAndPath, pathSeparatorConstant)
	}
	if !hasPath {
		return RepositoryReference{}, InvalidReferenceError{Input: input, Message: invalidReferenceMessageConstant}
	}
	if hostError := requireGitHubHost(input, host); hostError != nil {
		return RepositoryReference{}, hostError
	}
	return splitOwnerAndName(input, path)
}

func requireGitHubHost(input string, host string) error {
	if strings.EqualFold(host, defaultHostConstant) {
		return nil
	}
	return InvalidReferenceError{Input: input, Message: fmt.Sprintf(unsupportedHostTemplateConstant, host)}
}

func splitOwnerAndName(input string, path string) (RepositoryReference, error) {
	owner, name, hasSeparator := strings.Cut(path, pathSeparatorConstant)
	name = strings.TrimSuffix(name, gitSuffixConstant)
	if !hasSeparator || len(owner) == 0 || len(name) == 0 || strings.Contains(name, pathSeparatorConstant) {
		return RepositoryReference{}, InvalidReferenceError{Input: input, Message: invalidReferenceMessageConstant}
	}
	return RepositoryReference{Owner: owner, Name: name}, nil
}
