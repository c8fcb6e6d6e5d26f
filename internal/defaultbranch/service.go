package defaultbranch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/defbranch/internal/branches"
	"github.com/temirov/defbranch/internal/gitrepo"
	"github.com/temirov/defbranch/internal/githubcli"
	"github.com/temirov/defbranch/internal/prompt"
)

const (
	defaultParallelismConstant                = 4
	repositoryOwnerSeparatorConstant          = "/"
	noRepositoriesMessageConstant             = "no repositories selected: provide repository names or an owner"
	hostNotConfiguredMessageConstant          = "repository host not configured"
	reportWriterNotConfiguredMessageConstant  = "report writer not configured"
	resolveMetadataErrorTemplateConstant      = "resolve metadata of %s: %w"
	listBranchesErrorTemplateConstant         = "list branches of %s: %w"
	listRepositoriesErrorTemplateConstant     = "list repositories of %s: %w"
	resolveLoginErrorTemplateConstant         = "resolve authenticated user: %w"
	serviceLogMessageSkippedArchivedConstant  = "Skipping archived repository"
	serviceLogMessageEvaluationFailedConstant = "Failed to evaluate repository"
	serviceLogMessageEvaluatedConstant        = "Evaluated default branch"
	serviceLogMessageNotOwnerConstant         = "Refusing to change default branch: authenticated user is not the repository owner"
	serviceLogMessageFixFailedConstant        = "Failed to fix default branch"
	serviceLogFieldRepositoryConstant         = "repository"
	serviceLogFieldDefaultBranchConstant      = "default_branch"
	serviceLogFieldDiagnosticsConstant        = "diagnostics"
	serviceLogFieldNeedsChangeConstant        = "needs_change"
	serviceLogFieldOwnerConstant              = "owner"
	serviceLogFieldLoginConstant              = "login"
)

var (
	// ErrNoRepositories indicates neither repository names nor an owner were supplied.
	ErrNoRepositories = errors.New(noRepositoriesMessageConstant)
	// ErrRepositoryHostNotConfigured indicates the service was constructed without a host.
	ErrRepositoryHostNotConfigured = errors.New(hostNotConfiguredMessageConstant)
	// ErrReportWriterNotConfigured indicates the service was constructed without a report writer.
	ErrReportWriterNotConfigured = errors.New(reportWriterNotConfiguredMessageConstant)
)

// RepositoryHost is the hosting collaborator required by the service.
type RepositoryHost interface {
	DefaultBranchWriter
	ResolveRepoMetadata(executionContext context.Context, repository string) (githubcli.RepositoryMetadata, error)
	ListBranches(executionContext context.Context, repository string) ([]string, error)
	ListRepositories(executionContext context.Context, owner string, resultLimit int) ([]githubcli.RepositorySummary, error)
	ResolveAuthenticatedLogin(executionContext context.Context) (string, error)
}

// ServiceOptions configures one batch run.
type ServiceOptions struct {
	Owner           string
	Repositories    []string
	IncludeArchived bool
	Policy          PolicyConfiguration
	Fix             bool
	Parallelism     int
	RepositoryLimit int
}

// Service evaluates and optionally fixes the default branch of many repositories.
type Service struct {
	host         RepositoryHost
	prompter     prompt.Prompter
	reportWriter *ReportWriter
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service. The prompter is only consulted when fixing.
func NewService(host RepositoryHost, prompter prompt.Prompter, reportWriter *ReportWriter, outputWriter io.Writer, logger *zap.Logger) (*Service, error) {
	if host == nil {
		return nil, ErrRepositoryHostNotConfigured
	}
	if reportWriter == nil {
		return nil, ErrReportWriterNotConfigured
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{host: host, prompter: prompter, reportWriter: reportWriter, outputWriter: outputWriter, logger: logger}, nil
}

type repositoryTarget struct {
	name          string
	defaultBranch string
	archived      bool
	resolved      bool
}

type repositoryResult struct {
	target     repositoryTarget
	evaluation Evaluation
	skipped    bool
	failure    error
}

// Run evaluates every selected repository in parallel, writes the report and,
// when options.Fix is set, walks through the repositories needing a change in order.
// Per-repository failures are logged and joined into the returned error.
func (service *Service) Run(executionContext context.Context, options ServiceOptions) error {
	targets, targetsError := service.resolveTargets(executionContext, options)
	if targetsError != nil {
		return targetsError
	}

	results, evaluationError := service.evaluateTargets(executionContext, targets, options)
	if evaluationError != nil {
		return evaluationError
	}

	repositoryErrors := make([]error, 0)
	reports := make([]RepositoryReport, 0, len(results))
	for _, result := range results {
		switch {
		case result.failure != nil:
			service.logger.Error(serviceLogMessageEvaluationFailedConstant, zap.String(serviceLogFieldRepositoryConstant, result.target.name), zap.Error(result.failure))
			repositoryErrors = append(repositoryErrors, result.failure)
		case result.skipped:
			service.logger.Info(serviceLogMessageSkippedArchivedConstant, zap.String(serviceLogFieldRepositoryConstant, result.target.name))
		default:
			service.logger.Debug(
				serviceLogMessageEvaluatedConstant,
				zap.String(serviceLogFieldRepositoryConstant, result.target.name),
				zap.String(serviceLogFieldDefaultBranchConstant, result.evaluation.DefaultBranch),
				zap.Strings(serviceLogFieldDiagnosticsConstant, result.evaluation.Diagnostics),
				zap.Bool(serviceLogFieldNeedsChangeConstant, result.evaluation.NeedsChange),
			)
			reports = append(reports, NewRepositoryReport(result.target.name, result.evaluation))
		}
	}

	if writeError := service.reportWriter.Write(reports); writeError != nil {
		return writeError
	}

	if options.Fix {
		if fixError := service.fixRepositories(executionContext, results); fixError != nil {
			repositoryErrors = append(repositoryErrors, fixError)
		}
	}

	return errors.Join(repositoryErrors...)
}

func (service *Service) resolveTargets(executionContext context.Context, options ServiceOptions) ([]repositoryTarget, error) {
	repositoryNames, referenceError := normalizeRepositoryReferences(options.Repositories, options.Owner)
	if referenceError != nil {
		return nil, referenceError
	}
	if len(repositoryNames) > 0 {
		targets := make([]repositoryTarget, 0, len(repositoryNames))
		for _, repositoryName := range repositoryNames {
			targets = append(targets, repositoryTarget{name: repositoryName})
		}
		return targets, nil
	}

	owner := strings.TrimSpace(options.Owner)
	if len(owner) == 0 {
		return nil, ErrNoRepositories
	}

	summaries, listError := service.host.ListRepositories(executionContext, owner, options.RepositoryLimit)
	if listError != nil {
		return nil, fmt.Errorf(listRepositoriesErrorTemplateConstant, owner, listError)
	}

	targets := make([]repositoryTarget, 0, len(summaries))
	for _, summary := range summaries {
		targets = append(targets, repositoryTarget{
			name:          summary.NameWithOwner,
			defaultBranch: summary.DefaultBranch,
			archived:      summary.IsArchived,
			resolved:      true,
		})
	}
	return targets, nil
}

func (service *Service) evaluateTargets(executionContext context.Context, targets []repositoryTarget, options ServiceOptions) ([]repositoryResult, error) {
	parallelism := options.Parallelism
	if parallelism <= 0 {
		parallelism = defaultParallelismConstant
	}

	results := make([]repositoryResult, len(targets))
	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(parallelism)

	for targetIndex := range targets {
		group.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			results[targetIndex] = service.evaluateTarget(groupContext, targets[targetIndex], options)
			return nil
		})
	}

	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	return results, nil
}

func (service *Service) evaluateTarget(executionContext context.Context, target repositoryTarget, options ServiceOptions) repositoryResult {
	if !target.resolved {
		metadata, metadataError := service.host.ResolveRepoMetadata(executionContext, target.name)
		if metadataError != nil {
			return repositoryResult{target: target, failure: fmt.Errorf(resolveMetadataErrorTemplateConstant, target.name, metadataError)}
		}
		if len(metadata.NameWithOwner) > 0 {
			target.name = metadata.NameWithOwner
		}
		target.defaultBranch = metadata.DefaultBranch
		target.archived = metadata.IsArchived
		target.resolved = true
	}

	if target.archived && !options.IncludeArchived {
		return repositoryResult{target: target, skipped: true}
	}

	branchNames, branchesError := service.host.ListBranches(executionContext, target.name)
	if branchesError != nil {
		return repositoryResult{target: target, failure: fmt.Errorf(listBranchesErrorTemplateConstant, target.name, branchesError)}
	}

	catalog := branches.BuildCatalog(branchNames, target.defaultBranch)
	return repositoryResult{target: target, evaluation: Evaluate(catalog, options.Policy)}
}

func (service *Service) fixRepositories(executionContext context.Context, results []repositoryResult) error {
	pending := make([]repositoryResult, 0)
	for _, result := range results {
		if result.failure == nil && !result.skipped && result.evaluation.NeedsChange {
			pending = append(pending, result)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if service.prompter == nil {
		return ErrPrompterNotConfigured
	}

	login, loginError := service.host.ResolveAuthenticatedLogin(executionContext)
	if loginError != nil {
		return fmt.Errorf(resolveLoginErrorTemplateConstant, loginError)
	}

	fixer, fixerError := NewFixer(service.host, service.prompter, service.outputWriter, service.logger)
	if fixerError != nil {
		return fixerError
	}

	fixErrors := make([]error, 0)
	for _, result := range pending {
		if contextError := executionContext.Err(); contextError != nil {
			return errors.Join(append(fixErrors, contextError)...)
		}

		owner := repositoryOwner(result.target.name)
		if !strings.EqualFold(owner, login) {
			service.logger.Warn(
				serviceLogMessageNotOwnerConstant,
				zap.String(serviceLogFieldRepositoryConstant, result.target.name),
				zap.String(serviceLogFieldOwnerConstant, owner),
				zap.String(serviceLogFieldLoginConstant, login),
			)
			continue
		}

		if _, fixError := fixer.Fix(executionContext, result.target.name, result.evaluation); fixError != nil {
			service.logger.Error(serviceLogMessageFixFailedConstant, zap.String(serviceLogFieldRepositoryConstant, result.target.name), zap.Error(fixError))
			fixErrors = append(fixErrors, fixError)
		}
	}

	return errors.Join(fixErrors...)
}

func repositoryOwner(repository string) string {
	owner, _, _ := strings.Cut(repository, repositoryOwnerSeparatorConstant)
	return owner
}

// normalizeRepositoryReferences converts names and remote URLs to unique owner/name values.
// Bare names resolve against owner when one is given.
func normalizeRepositoryReferences(values []string, owner string) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if len(strings.TrimSpace(value)) == 0 {
			continue
		}
		reference, parseError := gitrepo.ParseOwnedRepositoryReference(value, owner)
		if parseError != nil {
			return nil, parseError
		}
		fullName := reference.FullName()
		if _, duplicate := seen[fullName]; duplicate {
			continue
		}
		seen[fullName] = struct{}{}
		unique = append(unique, fullName)
	}
	return unique, nil
}
