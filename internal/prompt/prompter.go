package prompt

import (
	"errors"
	"fmt"
)

const (
	emptyOptionsMessageConstant        = "option list cannot be empty"
	invalidAnswerErrorTemplateConstant = "invalid answer %q: %s"
)

// ErrEmptyOptions indicates an option selection was requested without options.
var ErrEmptyOptions = errors.New(emptyOptionsMessageConstant)

// Confirmer asks yes/no questions.
type Confirmer interface {
	Confirm(question string, defaultAnswer bool) (bool, error)
}

// OptionSelector asks the operator to pick one of several options.
// The boolean result is false when no option was chosen.
type OptionSelector interface {
	ChooseOption(question string, options []string) (int, bool, error)
}

// Prompter combines confirmation and option selection.
type Prompter interface {
	Confirmer
	OptionSelector
}

// InvalidAnswerError reports an answer that could not be interpreted.
type InvalidAnswerError struct {
	Answer string
	Reason string
}

// Error describes the rejected answer.
func (answerError InvalidAnswerError) Error() string {
	return fmt.Sprintf(invalidAnswerErrorTemplateConstant, answerError.Answer, answerError.Reason)
}

// AssumeYesPrompter confirms every question and delegates option selection.
type AssumeYesPrompter struct {
	selector OptionSelector
}

// NewAssumeYesPrompter wraps selector so that confirmations are skipped.
func NewAssumeYesPrompter(selector OptionSelector) *AssumeYesPrompter {
	return &AssumeYesPrompter{selector: selector}
}

// Confirm always answers yes.
func (prompter *AssumeYesPrompter) Confirm(string, bool) (bool, error) {
	return true, nil
}

// ChooseOption delegates to the wrapped selector.
func (prompter *AssumeYesPrompter) ChooseOption(question string, options []string) (int, bool, error) {
	if prompter.selector == nil {
		return 0, false, nil
	}
	return prompter.selector.ChooseOption(question, options)
}
