package defaultbranch

import (
	"cmp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/defbranch/internal/branches"
)

const (
	inspectUseConstant                     = "inspect <default-branch> [branch ...]"
	inspectShortDescriptionConstant        = "Evaluate a literal branch list against the policy"
	inspectLongDescriptionConstant         = "inspect evaluates the given default branch and branch names without contacting GitHub and prints the report."
	inspectMinimumArgumentsConstant        = 1
	flagRepositoryLabelNameConstant        = "repository"
	flagRepositoryLabelDescriptionConstant = "Repository label used in the report"
	defaultRepositoryLabelConstant         = "inspect"
	inspectLogMessageConstant              = "Inspected branch list"
	inspectLogFieldBranchCountConstant     = "branch_count"
)

// InspectCommandBuilder assembles the offline inspect command.
type InspectCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the inspect command.
func (builder *InspectCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   inspectUseConstant,
		Short: inspectShortDescriptionConstant,
		Long:  inspectLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(inspectMinimumArgumentsConstant),
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagRepositoryLabelNameConstant, defaultRepositoryLabelConstant, flagRepositoryLabelDescriptionConstant)
	bindPolicyFlags(command, defaults)
	bindOutputFlag(command, defaults)

	return command, nil
}

func (builder *InspectCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	configuration = applyPolicyFlags(command, configuration)
	configuration = applyOutputFlag(command, configuration)
	configuration = configuration.sanitize()

	policy, policyError := buildPolicy(configuration)
	if policyError != nil {
		return policyError
	}

	outputFormat, outputError := ParseOutputFormat(cmp.Or(configuration.Output, string(OutputFormatText)))
	if outputError != nil {
		return outputError
	}

	reportWriter, reportWriterError := NewReportWriter(command.OutOrStdout(), outputFormat)
	if reportWriterError != nil {
		return reportWriterError
	}

	repositoryLabel, _ := command.Flags().GetString(flagRepositoryLabelNameConstant)
	defaultBranchName := arguments[0]
	branchNames := arguments[1:]

	evaluation := Evaluate(branches.BuildCatalog(branchNames, defaultBranchName), policy)

	resolveLogger(builder.LoggerProvider).Debug(
		inspectLogMessageConstant,
		zap.String(serviceLogFieldRepositoryConstant, repositoryLabel),
		zap.String(serviceLogFieldDefaultBranchConstant, evaluation.DefaultBranch),
		zap.Int(inspectLogFieldBranchCountConstant, len(branchNames)),
		zap.Strings(serviceLogFieldDiagnosticsConstant, evaluation.Diagnostics),
	)

	return reportWriter.Write([]RepositoryReport{NewRepositoryReport(repositoryLabel, evaluation)})
}
