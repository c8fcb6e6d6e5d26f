package defaultbranch_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/defbranch/internal/defaultbranch"
)

func sampleReports() []defaultbranch.RepositoryReport {
	return []defaultbranch.RepositoryReport{
		defaultbranch.NewRepositoryReport(testCompliantRepositoryConstant, defaultbranch.Evaluation{DefaultBranch: "testing/2.0"}),
		defaultbranch.NewRepositoryReport(testStaleRepositoryConstant, defaultbranch.Evaluation{
			DefaultBranch: "stable/1.0",
			Diagnostics:   []string{"default channel is not testing", "default branch is not on most recent version"},
			Suggestions:   []string{"testing/2.0", "stable/2.0"},
			NeedsChange:   true,
		}),
		defaultbranch.NewRepositoryReport(testUnknownRepositoryConstant, defaultbranch.Evaluation{
			DefaultBranch: "main",
			Diagnostics:   []string{"no versions found"},
		}),
	}
}

func TestReportWriterText(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reportWriter, writerError := defaultbranch.NewReportWriter(outputBuffer, defaultbranch.OutputFormatText)
	require.NoError(testInstance, writerError)

	require.NoError(testInstance, reportWriter.Write(sampleReports()))

	require.Equal(testInstance,
		`conan-io/openssl (default="stable/1.0"): default channel is not testing; default branch is not on most recent version; suggestions=['testing/2.0', 'stable/2.0']`+"\n"+
			`conan-io/website (default="main"): no versions found`+"\n",
		outputBuffer.String(),
	)
}

func TestReportWriterJSON(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reportWriter, writerError := defaultbranch.NewReportWriter(outputBuffer, defaultbranch.OutputFormatJSON)
	require.NoError(testInstance, writerError)

	require.NoError(testInstance, reportWriter.Write(sampleReports()))

	var decoded []map[string]any
	require.NoError(testInstance, json.Unmarshal(outputBuffer.Bytes(), &decoded))
	require.Len(testInstance, decoded, 3)
	require.Equal(testInstance, testCompliantRepositoryConstant, decoded[0]["repository"])
	require.Equal(testInstance, []any{}, decoded[0]["diagnostics"])
	require.NotContains(testInstance, decoded[0], "suggestions")
	require.Equal(testInstance, []any{"testing/2.0", "stable/2.0"}, decoded[1]["suggestions"])
	require.Equal(testInstance, "stable/1.0", decoded[1]["default_branch"])
}

func TestReportWriterNormalizesFormat(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reportWriter, writerError := defaultbranch.NewReportWriter(outputBuffer, defaultbranch.OutputFormat(" JSON "))
	require.NoError(testInstance, writerError)

	require.NoError(testInstance, reportWriter.Write(sampleReports()))

	var decoded []map[string]any
	require.NoError(testInstance, json.Unmarshal(outputBuffer.Bytes(), &decoded))
	require.Len(testInstance, decoded, 3)
}

func TestReportWriterYAML(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reportWriter, writerError := defaultbranch.NewReportWriter(outputBuffer, defaultbranch.OutputFormatYAML)
	require.NoError(testInstance, writerError)

	require.NoError(testInstance, reportWriter.Write(sampleReports()))
	require.Contains(testInstance, outputBuffer.String(), "- repository: conan-io/zlib\n")
	require.Contains(testInstance, outputBuffer.String(), "diagnostics: []\n")

	var decoded []defaultbranch.RepositoryReport
	require.NoError(testInstance, yaml.Unmarshal(outputBuffer.Bytes(), &decoded))
	require.Equal(testInstance, sampleReports(), decoded)
}

func TestReportWriterEmptyStructuredOutput(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reportWriter, writerError := defaultbranch.NewReportWriter(outputBuffer, defaultbranch.OutputFormatJSON)
	require.NoError(testInstance, writerError)

	require.NoError(testInstance, reportWriter.Write(nil))
	require.Equal(testInstance, "[]\n", outputBuffer.String())
}

func TestParseOutputFormat(testInstance *testing.T) {
	format, parseError := defaultbranch.ParseOutputFormat(" YAML ")
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, defaultbranch.OutputFormatYAML, format)

	_, parseError = defaultbranch.ParseOutputFormat("xml")
	require.Error(testInstance, parseError)

	_, writerError := defaultbranch.NewReportWriter(&bytes.Buffer{}, defaultbranch.OutputFormat("xml"))
	require.Error(testInstance, writerError)
}
