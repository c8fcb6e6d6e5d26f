package execshell

import (
	"fmt"
	"strings"
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
)

const (
	githubRepoSubcommandNameConstant        = "repo"
	githubRepoViewSubcommandNameConstant    = "view"
	githubRepoListSubcommandNameConstant    = "list"
	githubAPICommandNameConstant            = "api"
	githubMethodFlagConstant                = "-X"
	githubFieldFlagConstant                 = "-f"
	githubRepositoriesEndpointPrefix        = "repos/"
	githubBranchesEndpointSuffixConstant    = "/branches"
	githubUserEndpointConstant              = "user"
	githubDefaultBranchFieldPrefixConstant  = "default_branch="
	githubDefaultBranchUpdateMethodConstant = "PATCH"
	githubFlagPrefixConstant                = "-"
)

const (
	githubRepoViewStartTemplateConstant                       = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplateConstant                     = "Retrieved repository details for %s"
	githubRepoViewFailureTemplateConstant                     = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant            = "Unable to retrieve repository details for %s: %s"
	githubRepoListStartTemplateConstant                       = "Listing repositories of %s"
	githubRepoListSuccessTemplateConstant                     = "Listed repositories of %s"
	githubRepoListFailureTemplateConstant                     = "Failed to list repositories of %s (exit code %d%s)"
	githubRepoListExecutionFailureTemplateConstant            = "Unable to list repositories of %s: %s"
	githubBranchListStartTemplateConstant                     = "Listing branches of %s"
	githubBranchListSuccessTemplateConstant                   = "Listed branches of %s"
	githubBranchListFailureTemplateConstant                   = "Failed to list branches of %s (exit code %d%s)"
	githubBranchListExecutionFailureTemplateConstant          = "Unable to list branches of %s: %s"
	githubDefaultBranchUpdateStartTemplateConstant            = "Setting default branch for %s to %s"
	githubDefaultBranchUpdateSuccessTemplateConstant          = "Set default branch for %s to %s"
	githubDefaultBranchUpdateFailureTemplateConstant          = "Failed to set default branch for %s to %s (exit code %d%s)"
	githubDefaultBranchUpdateExecutionFailureTemplateConstant = "Unable to set default branch for %s to %s: %s"
	githubUserStartMessageConstant                            = "Resolving authenticated GitHub user"
	githubUserSuccessMessageConstant                          = "Resolved authenticated GitHub user"
	githubUserFailureTemplateConstant                         = "Failed to resolve authenticated GitHub user (exit code %d%s)"
	githubUserExecutionFailureTemplateConstant                = "Unable to resolve authenticated GitHub user: %s"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

// CommandMessageFormatter builds human-readable descriptions of command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, messageStageStart, ExecutionResult{}, nil)
}

// BuildSuccessMessage describes a command that finished with exit code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, messageStageSuccess, ExecutionResult{}, nil)
}

// BuildFailureMessage describes a command that finished with a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, messageStageFailure, result, nil)
}

// BuildExecutionFailureMessage describes a command that could not be executed.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, messageStageExecutionFailure, ExecutionResult{}, failure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, stage messageStage, result ExecutionResult, failure error) string {
	if command.Name == CommandGitHub {
		if message, described := formatter.describeGitHubCommand(command.Details.Arguments, stage, result, failure); described {
			return message
		}
	}
	return formatter.describeGenericCommand(command, stage, result, failure)
}

func (formatter CommandMessageFormatter) describeGitHubCommand(arguments []string, stage messageStage, result ExecutionResult, failure error) (string, bool) {
	if len(arguments) == 0 {
		return emptyStringConstant, false
	}

	switch arguments[0] {
	case githubRepoSubcommandNameConstant:
		if len(arguments) < 3 {
			return emptyStringConstant, false
		}
		subject := arguments[2]
		switch arguments[1] {
		case githubRepoViewSubcommandNameConstant:
			return formatter.selectTemplate(stage, result, failure,
				githubRepoViewStartTemplateConstant,
				githubRepoViewSuccessTemplateConstant,
				githubRepoViewFailureTemplateConstant,
				githubRepoViewExecutionFailureTemplateConstant,
				subject,
			), true
		case githubRepoListSubcommandNameConstant:
			return formatter.selectTemplate(stage, result, failure,
				githubRepoListStartTemplateConstant,
				githubRepoListSuccessTemplateConstant,
				githubRepoListFailureTemplateConstant,
				githubRepoListExecutionFailureTemplateConstant,
				subject,
			), true
		}
	case githubAPICommandNameConstant:
		return formatter.describeGitHubAPICommand(arguments[1:], stage, result, failure)
	}

	return emptyStringConstant, false
}

func (formatter CommandMessageFormatter) describeGitHubAPICommand(arguments []string, stage messageStage, result ExecutionResult, failure error) (string, bool) {
	endpoint := emptyStringConstant
	method := emptyStringConstant
	defaultBranch := emptyStringConstant
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		switch {
		case argument == githubMethodFlagConstant && index+1 < len(arguments):
			method = arguments[index+1]
			index++
		case argument == githubFieldFlagConstant && index+1 < len(arguments):
			if strings.HasPrefix(arguments[index+1], githubDefaultBranchFieldPrefixConstant) {
				defaultBranch = strings.TrimPrefix(arguments[index+1], githubDefaultBranchFieldPrefixConstant)
			}
			index++
		case len(endpoint) == 0 && !strings.HasPrefix(argument, githubFlagPrefixConstant):
			endpoint = argument
		}
	}

	switch {
	case endpoint == githubUserEndpointConstant:
		switch stage {
		case messageStageStart:
			return githubUserStartMessageConstant, true
		case messageStageSuccess:
			return githubUserSuccessMessageConstant, true
		case messageStageFailure:
			return fmt.Sprintf(githubUserFailureTemplateConstant, result.ExitCode, formatter.standardErrorSuffix(result.StandardError)), true
		default:
			return fmt.Sprintf(githubUserExecutionFailureTemplateConstant, formatter.failureMessage(failure)), true
		}
	case strings.HasPrefix(endpoint, githubRepositoriesEndpointPrefix) && strings.HasSuffix(endpoint, githubBranchesEndpointSuffixConstant):
		repository := strings.TrimSuffix(strings.TrimPrefix(endpoint, githubRepositoriesEndpointPrefix), githubBranchesEndpointSuffixConstant)
		return formatter.selectTemplate(stage, result, failure,
			githubBranchListStartTemplateConstant,
			githubBranchListSuccessTemplateConstant,
			githubBranchListFailureTemplateConstant,
			githubBranchListExecutionFailureTemplateConstant,
			repository,
		), true
	case strings.HasPrefix(endpoint, githubRepositoriesEndpointPrefix) && method == githubDefaultBranchUpdateMethodConstant && len(defaultBranch) > 0:
		repository := strings.TrimPrefix(endpoint, githubRepositoriesEndpointPrefix)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubDefaultBranchUpdateStartTemplateConstant, repository, defaultBranch), true
		case messageStageSuccess:
			return fmt.Sprintf(githubDefaultBranchUpdateSuccessTemplateConstant, repository, defaultBranch), true
		case messageStageFailure:
			return fmt.Sprintf(githubDefaultBranchUpdateFailureTemplateConstant, repository, defaultBranch, result.ExitCode, formatter.standardErrorSuffix(result.StandardError)), true
		default:
			return fmt.Sprintf(githubDefaultBranchUpdateExecutionFailureTemplateConstant, repository, defaultBranch, formatter.failureMessage(failure)), true
		}
	}

	return emptyStringConstant, false
}

func (formatter CommandMessageFormatter) selectTemplate(stage messageStage, result ExecutionResult, failure error, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string, subject string) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, subject)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, subject)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, subject, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(executionFailureTemplate, subject, formatter.failureMessage(failure))
	}
}

func (formatter CommandMessageFormatter) describeGenericCommand(command ShellCommand, stage messageStage, result ExecutionResult, failure error) string {
	commandLabel := formatter.commandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.failureMessage(failure))
	}
}

func (formatter CommandMessageFormatter) commandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := emptyStringConstant
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		workingDirectorySuffix = fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, strings.Join(commandParts, commandArgumentsJoinSeparatorConstant), workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) standardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) failureMessage(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
