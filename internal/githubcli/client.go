package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/defbranch/internal/execshell"
)

const (
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	listSubcommandConstant                  = "list"
	apiSubcommandConstant                   = "api"
	jsonFlagConstant                        = "--json"
	limitFlagConstant                       = "--limit"
	paginateFlagConstant                    = "--paginate"
	jqFlagConstant                          = "--jq"
	methodFlagConstant                      = "-X"
	fieldFlagConstant                       = "-f"
	httpMethodPatchConstant                 = "PATCH"
	branchNamesJQExpressionConstant         = ".[].name"
	loginJQExpressionConstant               = ".login"
	userEndpointConstant                    = "user"
	repositoryEndpointTemplateConstant      = "repos/%s"
	branchesEndpointTemplateConstant        = "repos/%s/branches"
	defaultBranchFieldTemplateConstant      = "default_branch=%s"
	repositoryFieldNameConstant             = "repository"
	ownerFieldNameConstant                  = "owner"
	branchFieldNameConstant                 = "branch"
	requiredValueMessageConstant            = "value required"
	emptyLoginMessageConstant               = "authenticated login is empty"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	repositoryListLimitDefaultValueConstant = 1000
	repoViewJSONFieldsConstant              = "defaultBranchRef,nameWithOwner,description,isArchived"
	repoListJSONFieldsConstant              = "nameWithOwner,isArchived,defaultBranchRef"
	lineSeparatorConstant                   = "\n"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	repositoryMetadataOperationNameConstant = OperationName("ResolveRepoMetadata")
	listBranchesOperationNameConstant       = OperationName("ListBranches")
	listRepositoriesOperationNameConstant   = OperationName("ListRepositories")
	setDefaultBranchOperationNameConstant   = OperationName("SetDefaultBranch")
	authenticatedLoginOperationNameConstant = OperationName("ResolveAuthenticatedLogin")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryMetadata contains key details resolved from GitHub.
type RepositoryMetadata struct {
	NameWithOwner string
	Description   string
	DefaultBranch string
	IsArchived    bool
}

// RepositorySummary describes one entry of an owner's repository listing.
type RepositorySummary struct {
	NameWithOwner string
	DefaultBranch string
	IsArchived    bool
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ResolveRepoMetadata retrieves canonical metadata for a repository using gh repo view.
func (client *Client) ResolveRepoMetadata(executionContext context.Context, repository string) (RepositoryMetadata, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return RepositoryMetadata{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryMetadata{}, OperationError{Operation: repositoryMetadataOperationNameConstant, Cause: executionError}
	}

	var response struct {
		NameWithOwner    string `json:"nameWithOwner"`
		Description      string `json:"description"`
		IsArchived       bool   `json:"isArchived"`
		DefaultBranchRef struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryMetadata{}, ResponseDecodingError{Operation: repositoryMetadataOperationNameConstant, Cause: decodingError}
	}

	return RepositoryMetadata{
		NameWithOwner: response.NameWithOwner,
		Description:   response.Description,
		DefaultBranch: response.DefaultBranchRef.Name,
		IsArchived:    response.IsArchived,
	}, nil
}

// ListBranches enumerates every branch name of a repository in the order GitHub reports them.
func (client *Client) ListBranches(executionContext context.Context, repository string) ([]string, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			paginateFlagConstant,
			fmt.Sprintf(branchesEndpointTemplateConstant, repositoryIdentifier),
			jqFlagConstant,
			branchNamesJQExpressionConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listBranchesOperationNameConstant, Cause: executionError}
	}

	branchNames := []string{}
	for _, outputLine := range strings.Split(executionResult.StandardOutput, lineSeparatorConstant) {
		branchName := strings.TrimSpace(outputLine)
		if len(branchName) == 0 {
			continue
		}
		branchNames = append(branchNames, branchName)
	}

	return branchNames, nil
}

// ListRepositories enumerates repositories owned by a user or organization using gh repo list.
func (client *Client) ListRepositories(executionContext context.Context, owner string, resultLimit int) ([]RepositorySummary, error) {
	ownerIdentifier := strings.TrimSpace(owner)
	if len(ownerIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	if resultLimit <= 0 {
		resultLimit = repositoryListLimitDefaultValueConstant
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			listSubcommandConstant,
			ownerIdentifier,
			jsonFlagConstant,
			repoListJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(resultLimit),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listRepositoriesOperationNameConstant, Cause: executionError}
	}

	var response []struct {
		NameWithOwner    string `json:"nameWithOwner"`
		IsArchived       bool   `json:"isArchived"`
		DefaultBranchRef struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listRepositoriesOperationNameConstant, Cause: decodingError}
	}

	repositories := make([]RepositorySummary, 0, len(response))
	for _, repositoryEntry := range response {
		repositories = append(repositories, RepositorySummary{
			NameWithOwner: repositoryEntry.NameWithOwner,
			DefaultBranch: repositoryEntry.DefaultBranchRef.Name,
			IsArchived:    repositoryEntry.IsArchived,
		})
	}

	return repositories, nil
}

// SetDefaultBranch changes the default branch of a repository using gh api.
func (client *Client) SetDefaultBranch(executionContext context.Context, repository string, branchName string) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	if len(strings.TrimSpace(branchName)) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(repositoryEndpointTemplateConstant, repositoryIdentifier),
			methodFlagConstant,
			httpMethodPatchConstant,
			fieldFlagConstant,
			fmt.Sprintf(defaultBranchFieldTemplateConstant, branchName),
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: setDefaultBranchOperationNameConstant, Cause: executionError}
	}

	return nil
}

// ResolveAuthenticatedLogin returns the login of the user gh is authenticated as.
func (client *Client) ResolveAuthenticatedLogin(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			userEndpointConstant,
			jqFlagConstant,
			loginJQExpressionConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: authenticatedLoginOperationNameConstant, Cause: executionError}
	}

	login := strings.TrimSpace(executionResult.StandardOutput)
	if len(login) == 0 {
		return "", ResponseDecodingError{Operation: authenticatedLoginOperationNameConstant, Cause: errors.New(emptyLoginMessageConstant)}
	}

	return login, nil
}
