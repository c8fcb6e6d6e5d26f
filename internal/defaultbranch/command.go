package defaultbranch

import (
	"cmp"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/defbranch/internal/execshell"
	"github.com/temirov/defbranch/internal/githubcli"
	"github.com/temirov/defbranch/internal/prompt"
	"github.com/temirov/defbranch/internal/ui"
	"github.com/temirov/defbranch/internal/utils/flags"
)

const (
	commandUseConstant                     = "default-branch [owner/repository ...]"
	commandShortDescriptionConstant        = "Audit and repair repository default branches"
	commandLongDescriptionConstant         = "default-branch checks that the default branch of each repository follows the channel/version policy and, with --fix, offers ranked replacements."
	commandExecutionErrorTemplateConstant  = "default branch check failed: %w"
	flagOwnerNameConstant                  = "owner"
	flagOwnerDescriptionConstant           = "Check every repository of this owner when no repositories are named"
	flagIncludeArchivedNameConstant        = "include-archived"
	flagIncludeArchivedDescriptionConstant = "Evaluate archived repositories instead of skipping them"
	flagPromptNameConstant                 = "prompt"
	flagPromptDescriptionConstant          = "Interactive prompt style"
	flagParallelismNameConstant            = "parallelism"
	flagParallelismDescriptionConstant     = "Number of repositories fetched concurrently"
	flagLimitNameConstant                  = "limit"
	flagLimitDescriptionConstant           = "Maximum number of owner repositories to list"
	unsupportedPromptTemplateConstant      = "unsupported prompt style %q"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the loaded command configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the default-branch command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Host                         RepositoryHost
	Prompter                     prompt.Prompter
}

type commandOptions struct {
	service      ServiceOptions
	assumeYes    bool
	promptStyle  PromptStyle
	outputFormat OutputFormat
}

// Build constructs the default-branch command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagOwnerNameConstant, defaults.Owner, flagOwnerDescriptionConstant)
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{Fix: defaults.Fix, AssumeYes: defaults.AssumeYes}, flags.DefaultExecutionFlagDefinitions())
	flags.AddToggleFlag(command.Flags(), nil, flagIncludeArchivedNameConstant, "", defaults.IncludeArchived, flagIncludeArchivedDescriptionConstant)
	flags.AddChoiceFlag(command.Flags(), flagPromptNameConstant, defaults.Prompt, []string{string(PromptStyleLine), string(PromptStyleMenu)}, flagPromptDescriptionConstant)
	command.Flags().Int(flagParallelismNameConstant, defaults.Parallelism, flagParallelismDescriptionConstant)
	command.Flags().Int(flagLimitNameConstant, 0, flagLimitDescriptionConstant)
	bindPolicyFlags(command, defaults)
	bindOutputFlag(command, defaults)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := resolveLogger(builder.LoggerProvider)
	host, hostError := builder.resolveHost(logger)
	if hostError != nil {
		return hostError
	}

	interactionWriter := resolveInteractionWriter(command, options.outputFormat)
	prompter := builder.resolvePrompter(command, interactionWriter, options)

	reportWriter, reportWriterError := NewReportWriter(command.OutOrStdout(), options.outputFormat)
	if reportWriterError != nil {
		return reportWriterError
	}

	service, serviceError := NewService(host, prompter, reportWriter, interactionWriter, logger)
	if serviceError != nil {
		return serviceError
	}

	if runError := service.Run(command.Context(), options.service); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (commandOptions, error) {
	configuration := resolveConfiguration(builder.ConfigurationProvider)

	if command.Flags().Changed(flagOwnerNameConstant) {
		configuration.Owner, _ = command.Flags().GetString(flagOwnerNameConstant)
	}
	if command.Flags().Changed(flags.FixFlagName) {
		configuration.Fix, _ = command.Flags().GetBool(flags.FixFlagName)
	}
	if command.Flags().Changed(flags.AssumeYesFlagName) {
		configuration.AssumeYes, _ = command.Flags().GetBool(flags.AssumeYesFlagName)
	}
	if command.Flags().Changed(flagIncludeArchivedNameConstant) {
		configuration.IncludeArchived, _ = command.Flags().GetBool(flagIncludeArchivedNameConstant)
	}
	if command.Flags().Changed(flagPromptNameConstant) {
		configuration.Prompt, _ = command.Flags().GetString(flagPromptNameConstant)
	}
	if command.Flags().Changed(flagParallelismNameConstant) {
		configuration.Parallelism, _ = command.Flags().GetInt(flagParallelismNameConstant)
	}
	if len(arguments) > 0 {
		configuration.Repositories = arguments
	}
	configuration = applyPolicyFlags(command, configuration)
	configuration = applyOutputFlag(command, configuration)
	configuration = configuration.sanitize()

	policy, policyError := buildPolicy(configuration)
	if policyError != nil {
		return commandOptions{}, policyError
	}

	outputFormat, outputError := ParseOutputFormat(cmp.Or(configuration.Output, string(OutputFormatText)))
	if outputError != nil {
		return commandOptions{}, outputError
	}

	promptStyle, promptError := parsePromptStyle(cmp.Or(configuration.Prompt, string(PromptStyleLine)))
	if promptError != nil {
		return commandOptions{}, promptError
	}

	repositoryLimit, _ := command.Flags().GetInt(flagLimitNameConstant)

	return commandOptions{
		service: ServiceOptions{
			Owner:           configuration.Owner,
			Repositories:    configuration.Repositories,
			IncludeArchived: configuration.IncludeArchived,
			Policy:          policy,
			Fix:             configuration.Fix,
			Parallelism:     configuration.Parallelism,
			RepositoryLimit: repositoryLimit,
		},
		assumeYes:    configuration.AssumeYes,
		promptStyle:  promptStyle,
		outputFormat: outputFormat,
	}, nil
}

func (builder *CommandBuilder) resolveHost(logger *zap.Logger) (RepositoryHost, error) {
	if builder.Host != nil {
		return builder.Host, nil
	}

	executorOptions := make([]execshell.ShellExecutorOption, 0, 1)
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), executorOptions...)
	if executorError != nil {
		return nil, executorError
	}

	client, clientError := githubcli.NewClient(shellExecutor)
	if clientError != nil {
		return nil, clientError
	}

	return client, nil
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command, interactionWriter io.Writer, options commandOptions) prompt.Prompter {
	var selected prompt.Prompter = builder.Prompter
	if selected == nil {
		switch options.promptStyle {
		case PromptStyleMenu:
			selected = prompt.NewMenuPrompter(command.InOrStdin(), interactionWriter)
		default:
			selected = prompt.NewLinePrompter(command.InOrStdin(), interactionWriter)
		}
	}

	if options.assumeYes {
		return prompt.NewAssumeYesPrompter(selected)
	}
	return selected
}

// resolveInteractionWriter keeps prompts and progress out of structured reports on stdout.
func resolveInteractionWriter(command *cobra.Command, outputFormat OutputFormat) io.Writer {
	if outputFormat == OutputFormatText {
		return command.OutOrStdout()
	}
	return command.ErrOrStderr()
}

func parsePromptStyle(value string) (PromptStyle, error) {
	switch style := PromptStyle(value); style {
	case PromptStyleLine, PromptStyleMenu:
		return style, nil
	default:
		return "", fmt.Errorf(unsupportedPromptTemplateConstant, value)
	}
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}

	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func resolveConfiguration(provider ConfigurationProvider) CommandConfiguration {
	if provider == nil {
		return DefaultCommandConfiguration()
	}
	return provider()
}
