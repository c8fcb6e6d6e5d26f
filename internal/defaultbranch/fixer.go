package defaultbranch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/defbranch/internal/prompt"
)

const (
	doNothingOptionConstant                   = "- do nothing -"
	noSuggestionsMessageConstant              = "no default branch suggestions to choose from"
	chooseDefaultQuestionTemplateConstant     = `Change default of "%s" branch to?`
	confirmChangeQuestionTemplateConstant     = `Change the default branch of "%s" from "%s" to "%s"?`
	noAlternativeMessageConstant              = "Only one branch available -> do nothing\n"
	doNothingMessageConstant                  = "Do nothing\n"
	changingDefaultTemplateConstant           = "Changing default branch to %s ...\n"
	changeDoneMessageConstant                 = "... done\n"
	chooseOptionErrorTemplateConstant         = "choose default branch for %s: %w"
	confirmErrorTemplateConstant              = "confirm default branch change for %s: %w"
	optionOutOfRangeTemplateConstant          = "selected option %d out of range for %s"
	updateErrorTemplateConstant               = "set default branch of %s to %s: %v"
	fixerLogMessageDefaultChangedConstant     = "Changed default branch"
	fixerLogMessageDefaultKeptConstant        = "Kept default branch"
	fixerLogFieldRepositoryConstant           = "repository"
	fixerLogFieldPreviousDefaultConstant      = "previous_default"
	fixerLogFieldNewDefaultConstant           = "new_default"
	fixerWriterNotConfiguredMessageConstant   = "default branch writer not configured"
	fixerPrompterNotConfiguredMessageConstant = "prompter not configured"
)

var (
	// ErrNoSuggestions indicates a suggestion menu was requested for an empty suggestion list.
	ErrNoSuggestions = errors.New(noSuggestionsMessageConstant)
	// ErrDefaultBranchWriterNotConfigured indicates the fixer was constructed without a writer.
	ErrDefaultBranchWriterNotConfigured = errors.New(fixerWriterNotConfiguredMessageConstant)
	// ErrPrompterNotConfigured indicates the fixer was constructed without a prompter.
	ErrPrompterNotConfigured = errors.New(fixerPrompterNotConfiguredMessageConstant)
)

// DefaultBranchWriter changes the default branch of a hosted repository.
type DefaultBranchWriter interface {
	SetDefaultBranch(executionContext context.Context, repository string, branchName string) error
}

// DefaultBranchUpdateError reports a failed attempt to change a default branch.
type DefaultBranchUpdateError struct {
	Repository string
	BranchName string
	Cause      error
}

// Error describes the failed update.
func (updateError DefaultBranchUpdateError) Error() string {
	return fmt.Sprintf(updateErrorTemplateConstant, updateError.Repository, updateError.BranchName, updateError.Cause)
}

// Unwrap exposes the hosting failure.
func (updateError DefaultBranchUpdateError) Unwrap() error {
	return updateError.Cause
}

// FixOutcome describes what the fixer did for one repository.
type FixOutcome struct {
	Changed          bool
	NewDefaultBranch string
}

// BuildMenuOptions prepends the do-nothing entry to the suggestions.
func BuildMenuOptions(suggestions []string) ([]string, error) {
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	options := make([]string, 0, len(suggestions)+1)
	options = append(options, doNothingOptionConstant)
	options = append(options, suggestions...)
	return options, nil
}

// Fixer interactively replaces non-compliant default branches.
type Fixer struct {
	writer       DefaultBranchWriter
	prompter     prompt.Prompter
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewFixer constructs a Fixer.
func NewFixer(writer DefaultBranchWriter, prompter prompt.Prompter, outputWriter io.Writer, logger *zap.Logger) (*Fixer, error) {
	if writer == nil {
		return nil, ErrDefaultBranchWriterNotConfigured
	}
	if prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fixer{writer: writer, prompter: prompter, outputWriter: outputWriter, logger: logger}, nil
}

// Fix offers the evaluation's suggestions and applies the chosen one after confirmation.
// A failed hosting write is returned as DefaultBranchUpdateError and not retried.
func (fixer *Fixer) Fix(executionContext context.Context, repository string, evaluation Evaluation) (FixOutcome, error) {
	if !evaluation.NeedsChange {
		return FixOutcome{}, nil
	}

	options, optionsError := BuildMenuOptions(evaluation.Suggestions)
	if errors.Is(optionsError, ErrNoSuggestions) {
		fmt.Fprint(fixer.outputWriter, noAlternativeMessageConstant)
		return FixOutcome{}, nil
	}

	selectedIndex, chosen, chooseError := fixer.prompter.ChooseOption(fmt.Sprintf(chooseDefaultQuestionTemplateConstant, repository), options)
	if chooseError != nil {
		return FixOutcome{}, fmt.Errorf(chooseOptionErrorTemplateConstant, repository, chooseError)
	}
	if !chosen {
		return fixer.keep(repository, evaluation), nil
	}
	if selectedIndex < 0 || selectedIndex >= len(options) {
		return FixOutcome{}, fmt.Errorf(optionOutOfRangeTemplateConstant, selectedIndex, repository)
	}
	if selectedIndex == 0 {
		return fixer.keep(repository, evaluation), nil
	}

	newDefaultBranch := options[selectedIndex]
	confirmed, confirmError := fixer.prompter.Confirm(fmt.Sprintf(confirmChangeQuestionTemplateConstant, repository, evaluation.DefaultBranch, newDefaultBranch), false)
	if confirmError != nil {
		return FixOutcome{}, fmt.Errorf(confirmErrorTemplateConstant, repository, confirmError)
	}
	if !confirmed {
		return fixer.keep(repository, evaluation), nil
	}

	fmt.Fprintf(fixer.outputWriter, changingDefaultTemplateConstant, newDefaultBranch)
	if writeError := fixer.writer.SetDefaultBranch(executionContext, repository, newDefaultBranch); writeError != nil {
		return FixOutcome{}, DefaultBranchUpdateError{Repository: repository, BranchName: newDefaultBranch, Cause: writeError}
	}
	fmt.Fprint(fixer.outputWriter, changeDoneMessageConstant)

	fixer.logger.Info(
		fixerLogMessageDefaultChangedConstant,
		zap.String(fixerLogFieldRepositoryConstant, repository),
		zap.String(fixerLogFieldPreviousDefaultConstant, evaluation.DefaultBranch),
		zap.String(fixerLogFieldNewDefaultConstant, newDefaultBranch),
	)

	return FixOutcome{Changed: true, NewDefaultBranch: newDefaultBranch}, nil
}

func (fixer *Fixer) keep(repository string, evaluation Evaluation) FixOutcome {
	fmt.Fprint(fixer.outputWriter, doNothingMessageConstant)
	fixer.logger.Debug(
		fixerLogMessageDefaultKeptConstant,
		zap.String(fixerLogFieldRepositoryConstant, repository),
		zap.String(fixerLogFieldPreviousDefaultConstant, evaluation.DefaultBranch),
	)
	return FixOutcome{}
}
