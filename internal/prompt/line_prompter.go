package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	yesNoQuestionTemplateConstant    = "%s [%s/%s] "
	optionLineTemplateConstant       = "[%4d] %s\n"
	optionQuestionTemplateConstant   = "%s [0-%d] "
	questionLineTemplateConstant     = "%s\n"
	yesMarkerConstant                = "y"
	noMarkerConstant                 = "n"
	defaultYesMarkerConstant         = "Y"
	defaultNoMarkerConstant          = "N"
	notBooleanReasonConstant         = "not a boolean value"
	notIntegerReasonConstant         = "answer must be an integer"
	outOfRangeReasonConstant         = "answer out of range"
	lineDelimiterConstant            = '\n'
	writePromptErrorTemplateConstant = "write prompt: %w"
	readAnswerErrorTemplateConstant  = "read answer: %w"
)

var (
	affirmativeAnswers = map[string]struct{}{"y": {}, "yes": {}, "1": {}, "true": {}}
	negativeAnswers    = map[string]struct{}{"n": {}, "no": {}, "0": {}, "false": {}}
)

// LinePrompter reads answers line by line from an io.Reader.
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter constructs a prompter from the provided reader and writer.
func NewLinePrompter(input io.Reader, output io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the question with a y/n hint; an empty answer selects defaultAnswer.
func (prompter *LinePrompter) Confirm(question string, defaultAnswer bool) (bool, error) {
	yesMarker := yesMarkerConstant
	noMarker := defaultNoMarkerConstant
	if defaultAnswer {
		yesMarker = defaultYesMarkerConstant
		noMarker = noMarkerConstant
	}

	if writeError := prompter.write(fmt.Sprintf(yesNoQuestionTemplateConstant, question, yesMarker, noMarker)); writeError != nil {
		return false, writeError
	}

	answer, readError := prompter.readAnswer()
	if readError != nil {
		return false, readError
	}
	if len(answer) == 0 {
		return defaultAnswer, nil
	}

	normalizedAnswer := strings.ToLower(answer)
	if _, affirmative := affirmativeAnswers[normalizedAnswer]; affirmative {
		return true, nil
	}
	if _, negative := negativeAnswers[normalizedAnswer]; negative {
		return false, nil
	}
	return false, InvalidAnswerError{Answer: answer, Reason: notBooleanReasonConstant}
}

// ChooseOption lists the numbered options and reads the selected index.
// An empty answer chooses nothing.
func (prompter *LinePrompter) ChooseOption(question string, options []string) (int, bool, error) {
	if len(options) == 0 {
		return 0, false, ErrEmptyOptions
	}

	var promptBuilder strings.Builder
	promptBuilder.WriteString(fmt.Sprintf(questionLineTemplateConstant, question))
	for optionIndex, option := range options {
		promptBuilder.WriteString(fmt.Sprintf(optionLineTemplateConstant, optionIndex, option))
	}
	promptBuilder.WriteString(fmt.Sprintf(optionQuestionTemplateConstant, question, len(options)-1))
	if writeError := prompter.write(promptBuilder.String()); writeError != nil {
		return 0, false, writeError
	}

	answer, readError := prompter.readAnswer()
	if readError != nil {
		return 0, false, readError
	}
	if len(answer) == 0 {
		return 0, false, nil
	}

	if strings.IndexFunc(answer, isNotDecimalDigit) >= 0 {
		return 0, false, InvalidAnswerError{Answer: answer, Reason: notIntegerReasonConstant}
	}
	selectedIndex, conversionError := strconv.Atoi(answer)
	if conversionError != nil || selectedIndex >= len(options) {
		return 0, false, InvalidAnswerError{Answer: answer, Reason: outOfRangeReasonConstant}
	}

	return selectedIndex, true, nil
}

func (prompter *LinePrompter) write(text string) error {
	if prompter.writer == nil {
		return nil
	}
	if _, writeError := io.WriteString(prompter.writer, text); writeError != nil {
		return fmt.Errorf(writePromptErrorTemplateConstant, writeError)
	}
	return nil
}

func (prompter *LinePrompter) readAnswer() (string, error) {
	response, readError := prompter.reader.ReadString(lineDelimiterConstant)
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", fmt.Errorf(readAnswerErrorTemplateConstant, readError)
	}
	return strings.TrimSpace(response), nil
}

func isNotDecimalDigit(character rune) bool {
	return character < '0' || character > '9'
}
