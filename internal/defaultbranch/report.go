package defaultbranch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	textReportLineTemplateConstant    = "%s (default=\"%s\"): %s\n"
	textSuggestionsTemplateConstant   = "suggestions=%s"
	textMessageSeparatorConstant      = "; "
	jsonIndentPrefixConstant          = ""
	jsonIndentConstant                = "  "
	yamlIndentConstant                = 2
	unsupportedOutputTemplateConstant = "unsupported output format %q"
	encodeReportErrorTemplateConstant = "encode %s report: %w"
	writeReportErrorTemplateConstant  = "write report: %w"
)

// OutputFormat selects how reports are rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a textual output format.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(value))); format {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf(unsupportedOutputTemplateConstant, value)
	}
}

// RepositoryReport is the rendered evaluation of one repository.
type RepositoryReport struct {
	Repository    string   `json:"repository" yaml:"repository"`
	DefaultBranch string   `json:"default_branch" yaml:"default_branch"`
	Diagnostics   []string `json:"diagnostics" yaml:"diagnostics"`
	Suggestions   []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// NewRepositoryReport pairs a repository name with its evaluation.
func NewRepositoryReport(repository string, evaluation Evaluation) RepositoryReport {
	diagnostics := evaluation.Diagnostics
	if diagnostics == nil {
		diagnostics = []string{}
	}
	return RepositoryReport{
		Repository:    repository,
		DefaultBranch: evaluation.DefaultBranch,
		Diagnostics:   diagnostics,
		Suggestions:   evaluation.Suggestions,
	}
}

// ReportWriter renders repository reports in one output format.
type ReportWriter struct {
	writer io.Writer
	format OutputFormat
}

// NewReportWriter constructs a ReportWriter.
func NewReportWriter(writer io.Writer, format OutputFormat) (*ReportWriter, error) {
	parsedFormat, parseError := ParseOutputFormat(string(format))
	if parseError != nil {
		return nil, parseError
	}
	if writer == nil {
		writer = io.Discard
	}
	return &ReportWriter{writer: writer, format: parsedFormat}, nil
}

// Write renders reports. Text output lists only repositories with diagnostics;
// structured formats include every report.
func (reportWriter *ReportWriter) Write(reports []RepositoryReport) error {
	if reports == nil {
		reports = []RepositoryReport{}
	}

	switch reportWriter.format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(reportWriter.writer)
		encoder.SetIndent(jsonIndentPrefixConstant, jsonIndentConstant)
		if encodeError := encoder.Encode(reports); encodeError != nil {
			return fmt.Errorf(encodeReportErrorTemplateConstant, reportWriter.format, encodeError)
		}
		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(reportWriter.writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(reports); encodeError != nil {
			return fmt.Errorf(encodeReportErrorTemplateConstant, reportWriter.format, encodeError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return fmt.Errorf(encodeReportErrorTemplateConstant, reportWriter.format, closeError)
		}
		return nil
	default:
		for _, report := range reports {
			if writeError := reportWriter.writeText(report); writeError != nil {
				return writeError
			}
		}
		return nil
	}
}

func (reportWriter *ReportWriter) writeText(report RepositoryReport) error {
	if len(report.Diagnostics) == 0 {
		return nil
	}

	messages := append([]string{}, report.Diagnostics...)
	if len(report.Suggestions) > 0 {
		messages = append(messages, fmt.Sprintf(textSuggestionsTemplateConstant, FormatNameList(report.Suggestions)))
	}

	if _, writeError := fmt.Fprintf(reportWriter.writer, textReportLineTemplateConstant, report.Repository, report.DefaultBranch, strings.Join(messages, textMessageSeparatorConstant)); writeError != nil {
		return fmt.Errorf(writeReportErrorTemplateConstant, writeError)
	}
	return nil
}
