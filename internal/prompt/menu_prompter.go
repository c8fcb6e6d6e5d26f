package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	menuSelectedPrefixConstant          = "▸ "
	menuUnselectedPrefixConstant        = "  "
	menuLineSeparatorConstant           = "\n"
	menuYesOptionConstant               = "Yes"
	menuNoOptionConstant                = "No"
	menuRunErrorTemplateConstant        = "run menu: %w"
	menuUnexpectedModelTemplateConstant = "run menu: unexpected model %T"
)

var (
	menuQuestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true).MarginBottom(1)
	menuOptionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("white"))
	menuSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Background(lipgloss.Color("238")).Bold(true)
	menuHelpStyle     = lipgloss.NewStyle().MarginTop(1)
)

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Select key.Binding
	Abort  key.Binding
}

var menuKeys = menuKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	First:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Last:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Abort:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// ShortHelp implements help.KeyMap.
func (keyMap menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keyMap.Up, keyMap.Down, keyMap.Select, keyMap.Abort}
}

// FullHelp implements help.KeyMap.
func (keyMap menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keyMap.ShortHelp(), {keyMap.First, keyMap.Last}}
}

type menuModel struct {
	question string
	options  []string
	cursor   int
	chosen   bool
	help     help.Model
}

func newMenuModel(question string, options []string, initialCursor int) menuModel {
	return menuModel{question: question, options: options, cursor: initialCursor, help: help.New()}
}

func (model menuModel) Init() tea.Cmd {
	return nil
}

func (model menuModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKeyMessage := message.(tea.KeyMsg)
	if !isKeyMessage {
		return model, nil
	}

	switch {
	case key.Matches(keyMessage, menuKeys.Down):
		if model.cursor < len(model.options)-1 {
			model.cursor++
		}
	case key.Matches(keyMessage, menuKeys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(keyMessage, menuKeys.First):
		model.cursor = 0
	case key.Matches(keyMessage, menuKeys.Last):
		model.cursor = len(model.options) - 1
	case key.Matches(keyMessage, menuKeys.Select):
		model.chosen = true
		return model, tea.Quit
	case key.Matches(keyMessage, menuKeys.Abort):
		return model, tea.Quit
	}

	return model, nil
}

func (model menuModel) View() string {
	var view strings.Builder
	view.WriteString(menuQuestionStyle.Render(model.question) + menuLineSeparatorConstant)
	for optionIndex, option := range model.options {
		if optionIndex == model.cursor {
			view.WriteString(menuSelectedStyle.Render(menuSelectedPrefixConstant+option) + menuLineSeparatorConstant)
			continue
		}
		view.WriteString(menuUnselectedPrefixConstant + menuOptionStyle.Render(option) + menuLineSeparatorConstant)
	}
	view.WriteString(menuHelpStyle.Render(model.help.View(menuKeys)) + menuLineSeparatorConstant)
	return view.String()
}

type menuRunner func(model tea.Model) (tea.Model, error)

// MenuPrompter renders interactive terminal menus with bubbletea.
type MenuPrompter struct {
	runMenu menuRunner
}

// NewMenuPrompter constructs a menu prompter reading keys from input and drawing on output.
func NewMenuPrompter(input io.Reader, output io.Writer) *MenuPrompter {
	return &MenuPrompter{
		runMenu: func(model tea.Model) (tea.Model, error) {
			return tea.NewProgram(model, tea.WithInput(input), tea.WithOutput(output)).Run()
		},
	}
}

// Confirm presents Yes and No with the cursor on defaultAnswer. Cancelling answers no.
func (prompter *MenuPrompter) Confirm(question string, defaultAnswer bool) (bool, error) {
	initialCursor := 1
	if defaultAnswer {
		initialCursor = 0
	}

	finalModel, runError := prompter.run(newMenuModel(question, []string{menuYesOptionConstant, menuNoOptionConstant}, initialCursor))
	if runError != nil {
		return false, runError
	}
	return finalModel.chosen && finalModel.cursor == 0, nil
}

// ChooseOption presents options as a list with the cursor on the first entry.
func (prompter *MenuPrompter) ChooseOption(question string, options []string) (int, bool, error) {
	if len(options) == 0 {
		return 0, false, ErrEmptyOptions
	}

	finalModel, runError := prompter.run(newMenuModel(question, options, 0))
	if runError != nil {
		return 0, false, runError
	}
	if !finalModel.chosen {
		return 0, false, nil
	}
	return finalModel.cursor, true, nil
}

func (prompter *MenuPrompter) run(model menuModel) (menuModel, error) {
	finalModel, runError := prompter.runMenu(model)
	if runError != nil {
		return menuModel{}, fmt.Errorf(menuRunErrorTemplateConstant, runError)
	}
	completedModel, isMenuModel := finalModel.(menuModel)
	if !isMenuModel {
		return menuModel{}, fmt.Errorf(menuUnexpectedModelTemplateConstant, finalModel)
	}
	return completedModel, nil
}
