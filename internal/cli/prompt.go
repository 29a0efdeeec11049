package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/tyemirov/snapshot/internal/config"
	"github.com/tyemirov/snapshot/internal/patterns"
)

const (
	promptRootPath            = "Please enter the path to the root directory of your project: "
	promptUseGitignore        = "Do you want to add its rules to the exclusion list? (yes/no): "
	promptManualPatterns      = "Do you want to manually add exclusion patterns? (yes/no): "
	promptPatternList         = "Separate multiple patterns with a comma: "
	patternHintMessage        = "\nPlease enter patterns to exclude (e.g., *.log, dist, build, *.tmp)\n"
	gitignoreFoundFormat      = "\nA .gitignore file was found at: %s\n"
	gitignoreLoadedFormat     = "Loaded %d patterns from .gitignore.\n"
	gitignoreIgnoredMessage   = "Ignoring .gitignore file.\n"
	gitignoreUnreadableFormat = "Warning: could not read %s: %v\n"
	gitignoreMissingMessage   = "\nNo .gitignore file found in the project root.\n"
	defaultsOnlyMessage       = "Proceeding with default exclusions only.\n"
	readAnswerErrorFormat     = "read answer: %w"
)

var affirmativeAnswers = map[string]struct{}{
	"yes": {},
	"y":   {},
}

// Prompter asks the questions of the interactive flow.
type Prompter interface {
	AskPath(question string) (string, error)
	AskYesNo(question string) (bool, error)
	AskPatterns(question string) (patterns.Set, error)
}

// consolePrompter reads answers line by line. End of input counts as an empty answer.
type consolePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func newConsolePrompter(input io.Reader, output io.Writer) *consolePrompter {
	return &consolePrompter{reader: bufio.NewReader(input), writer: output}
}

func (prompter *consolePrompter) readAnswer(question string) (string, error) {
	fmt.Fprint(prompter.writer, question)
	line, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", fmt.Errorf(readAnswerErrorFormat, readError)
	}
	return strings.TrimSpace(line), nil
}

func (prompter *consolePrompter) AskPath(question string) (string, error) {
	return prompter.readAnswer(question)
}

func (prompter *consolePrompter) AskYesNo(question string) (bool, error) {
	answer, readError := prompter.readAnswer(question)
	if readError != nil {
		return false, readError
	}
	_, affirmative := affirmativeAnswers[strings.ToLower(answer)]
	return affirmative, nil
}

func (prompter *consolePrompter) AskPatterns(question string) (patterns.Set, error) {
	fmt.Fprint(prompter.writer, patternHintMessage)
	answer, readError := prompter.readAnswer(question)
	if readError != nil {
		return nil, readError
	}
	return patterns.FromCommaSeparated(answer), nil
}

// interactiveSelection is the outcome of the interactive flow.
type interactiveSelection struct {
	rootPath   string
	exclusions patterns.Set
}

// collectInteractiveInputs runs the question flow. presetRootPath skips the root question
// when a root was given on the command line. validateRoot runs before any exclusion
// question so an invalid root fails fast.
func collectInteractiveInputs(
	prompter Prompter,
	output io.Writer,
	presetRootPath string,
	validateRoot func(string) (string, error),
) (interactiveSelection, error) {
	rootPath := presetRootPath
	if rootPath == "" {
		answer, askError := prompter.AskPath(promptRootPath)
		if askError != nil {
			return interactiveSelection{}, askError
		}
		rootPath = answer
	}
	validatedRootPath, validationError := validateRoot(rootPath)
	if validationError != nil {
		return interactiveSelection{}, validationError
	}

	selection := interactiveSelection{rootPath: validatedRootPath, exclusions: patterns.NewSet()}
	ignoreFilePath := config.IgnoreFilePath(validatedRootPath)
	ignoreLines, ignoreReadError := config.ReadIgnoreFileLines(ignoreFilePath)

	if errors.Is(ignoreReadError, fs.ErrNotExist) {
		fmt.Fprint(output, gitignoreMissingMessage)
		addManually, askError := prompter.AskYesNo(promptManualPatterns)
		if askError != nil {
			return interactiveSelection{}, askError
		}
		if !addManually {
			fmt.Fprint(output, defaultsOnlyMessage)
			return selection, nil
		}
		return selection.withPatternsFrom(prompter)
	}

	fmt.Fprintf(output, gitignoreFoundFormat, ignoreFilePath)
	useIgnoreFile, askError := prompter.AskYesNo(promptUseGitignore)
	if askError != nil {
		return interactiveSelection{}, askError
	}
	if !useIgnoreFile {
		fmt.Fprint(output, gitignoreIgnoredMessage)
		return selection.withPatternsFrom(prompter)
	}
	if ignoreReadError != nil {
		fmt.Fprintf(output, gitignoreUnreadableFormat, ignoreFilePath, ignoreReadError)
	}
	ignorePatterns := patterns.FromLines(ignoreLines)
	fmt.Fprintf(output, gitignoreLoadedFormat, ignorePatterns.Len())
	selection.exclusions = selection.exclusions.Union(ignorePatterns)
	return selection, nil
}

func (selection interactiveSelection) withPatternsFrom(prompter Prompter) (interactiveSelection, error) {
	manualPatterns, askError := prompter.AskPatterns(promptPatternList)
	if askError != nil {
		return interactiveSelection{}, askError
	}
	selection.exclusions = selection.exclusions.Union(manualPatterns)
	return selection, nil
}
