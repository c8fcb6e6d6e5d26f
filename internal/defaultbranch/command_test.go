package defaultbranch_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/defbranch/internal/defaultbranch"
	"github.com/temirov/defbranch/internal/githubcli"
)

const (
	commandSubtestNameTemplateConstant  = "%d_%s"
	commandCaseTextConstant             = "text report for named repositories"
	commandCaseCanonicalFlagConstant    = "canonical channel flag overrides configuration"
	commandCaseInvalidReferenceConstant = "invalid reference version"
	commandCaseInvalidPromptConstant    = "invalid prompt style"
	commandCaseInvalidOutputConstant    = "invalid output format"
	commandCaseMissingTargetsConstant   = "no repositories and no owner"
)

func TestDefaultBranchCommandOptions(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectError    bool
		expectedOutput string
	}{
		{
			name:           commandCaseTextConstant,
			arguments:      []string{testCompliantRepositoryConstant, testStaleRepositoryConstant},
			expectedOutput: serviceStaleReportLineConstant,
		},
		{
			name:           commandCaseCanonicalFlagConstant,
			arguments:      []string{"--canonical-channel", "stable", "--companion-channel", "stable", "--channel-priority", "stable,testing", testStaleRepositoryConstant},
			expectedOutput: `conan-io/openssl (default="stable/1.0"): default branch is not on most recent version; suggestions=['stable/2.0', 'testing/2.0', 'stable/1.0', 'testing/1.0']` + "\n",
		},
		{
			name:        commandCaseInvalidReferenceConstant,
			arguments:   []string{"--reference-version", "newest", testStaleRepositoryConstant},
			expectError: true,
		},
		{
			name:        commandCaseInvalidPromptConstant,
			arguments:   []string{"--prompt", "dialog", testStaleRepositoryConstant},
			expectError: true,
		},
		{
			name:        commandCaseInvalidOutputConstant,
			arguments:   []string{"--output", "xml", testStaleRepositoryConstant},
			expectError: true,
		},
		{
			name:        commandCaseMissingTargetsConstant,
			arguments:   []string{},
			expectError: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(commandSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			builder := defaultbranch.CommandBuilder{
				ConfigurationProvider: defaultbranch.DefaultCommandConfiguration,
				Host:                  newStandardRepositoryHost(),
			}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			outputBuffer := &bytes.Buffer{}
			command.SetOut(outputBuffer)
			command.SetErr(&bytes.Buffer{})
			command.SetArgs(testCase.arguments)

			executionError := command.Execute()
			if testCase.expectError {
				require.Error(testInstance, executionError)
				return
			}

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}

func TestDefaultBranchCommandUsesConfiguredOwner(testInstance *testing.T) {
	host := newStandardRepositoryHost()
	host.summaries = []githubcli.RepositorySummary{{NameWithOwner: testStaleRepositoryConstant, DefaultBranch: "stable/1.0"}}

	builder := defaultbranch.CommandBuilder{
		ConfigurationProvider: func() defaultbranch.CommandConfiguration {
			configuration := defaultbranch.DefaultCommandConfiguration()
			configuration.Owner = " " + testOwnerConstant + " "
			configuration.Output = "json"
			return configuration
		},
		Host: host,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetArgs([]string{"--limit", "25"})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, testOwnerConstant, host.listedOwner)
	require.Equal(testInstance, 25, host.listedLimit)

	var reports []defaultbranch.RepositoryReport
	require.NoError(testInstance, json.Unmarshal(outputBuffer.Bytes(), &reports))
	require.Len(testInstance, reports, 1)
	require.Equal(testInstance, []string{"testing/2.0", "stable/2.0", "testing/1.0", "stable/1.0"}, reports[0].Suggestions)
}

func TestDefaultBranchCommandFixWithAssumeYes(testInstance *testing.T) {
	host := newStandardRepositoryHost()
	prompter := &scriptedPrompter{selectedIndex: 2, chosen: true, confirmAnswer: false}

	builder := defaultbranch.CommandBuilder{
		ConfigurationProvider: defaultbranch.DefaultCommandConfiguration,
		Host:                  host,
		Prompter:              prompter,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetArgs([]string{"--fix", "--yes", testStaleRepositoryConstant})

	require.NoError(testInstance, command.Execute())
	require.Empty(testInstance, prompter.confirmations)
	require.Equal(testInstance, []setDefaultBranchCall{{repository: testStaleRepositoryConstant, branchName: "stable/2.0"}}, host.setCalls)
	require.Contains(testInstance, outputBuffer.String(), "Changing default branch to stable/2.0 ...\n... done\n")
}

func TestDefaultBranchCommandFixDisabledByFlag(testInstance *testing.T) {
	host := newStandardRepositoryHost()
	prompter := &scriptedPrompter{selectedIndex: 1, chosen: true, confirmAnswer: true}

	builder := defaultbranch.CommandBuilder{
		ConfigurationProvider: func() defaultbranch.CommandConfiguration {
			configuration := defaultbranch.DefaultCommandConfiguration()
			configuration.Fix = true
			return configuration
		},
		Host:     host,
		Prompter: prompter,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetArgs([]string{"--fix=no", testStaleRepositoryConstant})

	require.NoError(testInstance, command.Execute())
	require.Empty(testInstance, prompter.chooseQuestions)
	require.Empty(testInstance, host.setCalls)
}

func TestInspectCommand(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectError    bool
		expectedOutput string
	}{
		{
			name:           "stale default",
			arguments:      []string{"--repository", testStaleRepositoryConstant, "stable/1.0", "testing/2.0", "stable/2.0", "testing/1.0", "stable/1.0"},
			expectedOutput: serviceStaleReportLineConstant,
		},
		{
			name:           "compliant default",
			arguments:      []string{"testing/2.0", "testing/2.0", "stable/2.0"},
			expectedOutput: "",
		},
		{
			name:           "default label",
			arguments:      []string{"main", "main", "gh-pages"},
			expectedOutput: `inspect (default="main"): no versions found; non-conan branches found (['main', 'gh-pages']); default branch has not the channel/version format` + "\n",
		},
		{
			name:        "missing default branch",
			arguments:   []string{},
			expectError: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(commandSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			builder := defaultbranch.InspectCommandBuilder{ConfigurationProvider: defaultbranch.DefaultCommandConfiguration}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			outputBuffer := &bytes.Buffer{}
			command.SetOut(outputBuffer)
			command.SetErr(&bytes.Buffer{})
			command.SetArgs(testCase.arguments)

			executionError := command.Execute()
			if testCase.expectError {
				require.Error(testInstance, executionError)
				return
			}

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}
