package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tyemirov/snapshot/internal/config"
	"github.com/tyemirov/snapshot/internal/patterns"
	"github.com/tyemirov/snapshot/internal/services/clipboard"
	"github.com/tyemirov/snapshot/internal/snapshot"
	"github.com/tyemirov/snapshot/internal/tokenizer"
	"github.com/tyemirov/snapshot/internal/utils"
)

const (
	snapshotCreatedFormat  = "Project snapshot created: %s (%d files, %s)\n"
	tokenEstimateFormat    = "Estimated tokens (%s): %d\n"
	clipboardCopiedMessage = "Snapshot copied to clipboard.\n"
	outputPathErrorFormat  = "resolve output path %s: %w"
	tokenCountErrorFormat  = "count tokens: %w"
)

// snapshotOptions is the fully resolved input of one snapshot run.
type snapshotOptions struct {
	rootPath        string
	outputPath      string
	exclusions      patterns.Set
	useGitignore    bool
	interactive     bool
	copyToClipboard bool
	tokensEnabled   bool
	tokenModel      string
}

type counterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// snapshotRunner executes a snapshot run against injected collaborators.
type snapshotRunner struct {
	logger     *zap.Logger
	prompter   Prompter
	output     io.Writer
	copier     clipboard.Copier
	newCounter counterFactory
}

func (runner *snapshotRunner) run(options snapshotOptions) error {
	var tokenCounter tokenizer.Counter
	var tokenModel string
	if options.tokensEnabled {
		createdCounter, resolvedModel, counterError := runner.newCounter(tokenizer.Config{Model: options.tokenModel})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}

	rootPath, exclusions, selectionError := runner.selectRootAndExclusions(options)
	if selectionError != nil {
		return selectionError
	}

	outputPath, outputPathError := filepath.Abs(options.outputPath)
	if outputPathError != nil {
		return fmt.Errorf(outputPathErrorFormat, options.outputPath, outputPathError)
	}

	builder := snapshot.NewBuilder(runner.logger, snapshot.Options{OutputFileName: filepath.Base(outputPath)})
	result, buildError := builder.Build(rootPath, exclusions)
	if buildError != nil {
		return buildError
	}
	if writeError := snapshot.WriteDocument(outputPath, result.Document); writeError != nil {
		return writeError
	}

	runner.logger.Debug("Snapshot statistics",
		zap.String("root", rootPath),
		zap.String("output", utils.RelativePathOrSelf(outputPath, defaultRootPath)),
		zap.Int("included", result.Stats.IncludedFiles),
		zap.Int("excluded", result.Stats.ExcludedFiles),
		zap.Int("pruned_directories", result.Stats.PrunedDirectories),
		zap.Int("binary", result.Stats.BinaryFiles),
		zap.Int("unreadable", result.Stats.UnreadableFiles),
		zap.Int("skipped", result.Stats.SkippedEntries))
	fmt.Fprintf(runner.output, snapshotCreatedFormat,
		outputPath, result.Stats.IncludedFiles, utils.FormatFileSize(result.Stats.IncludedBytes))

	if tokenCounter != nil {
		countResult, countError := tokenizer.CountBytes(tokenCounter, []byte(result.Document))
		if countError != nil {
			return fmt.Errorf(tokenCountErrorFormat, countError)
		}
		fmt.Fprintf(runner.output, tokenEstimateFormat, tokenModel, countResult.Tokens)
	}

	if options.copyToClipboard {
		if copyError := runner.copier.Copy(result.Document); copyError != nil {
			runner.logger.Warn("Clipboard copy failed", zap.Error(copyError))
		} else {
			fmt.Fprint(runner.output, clipboardCopiedMessage)
		}
	}
	return nil
}

// selectRootAndExclusions resolves the root and the user exclusions either through the
// interactive flow or from flags and configuration.
func (runner *snapshotRunner) selectRootAndExclusions(options snapshotOptions) (string, patterns.Set, error) {
	if options.interactive {
		selection, selectionError := collectInteractiveInputs(runner.prompter, runner.output, options.rootPath, snapshot.ValidateRoot)
		if selectionError != nil {
			return "", nil, selectionError
		}
		return selection.rootPath, options.exclusions.Union(selection.exclusions), nil
	}

	rootPath := options.rootPath
	if rootPath == "" {
		rootPath = defaultRootPath
	}
	validatedRootPath, validationError := snapshot.ValidateRoot(rootPath)
	if validationError != nil {
		return "", nil, validationError
	}
	if !options.useGitignore {
		return validatedRootPath, options.exclusions, nil
	}

	ignoreFilePath := config.IgnoreFilePath(validatedRootPath)
	ignoreLines, ignoreReadError := config.ReadIgnoreFileLines(ignoreFilePath)
	switch {
	case ignoreReadError == nil:
		ignorePatterns := patterns.FromLines(ignoreLines)
		runner.logger.Debug("Loaded ignore file",
			zap.String("path", ignoreFilePath),
			zap.Int("patterns", ignorePatterns.Len()))
		return validatedRootPath, options.exclusions.Union(ignorePatterns), nil
	case errors.Is(ignoreReadError, fs.ErrNotExist):
		runner.logger.Debug("No ignore file in root", zap.String("path", ignoreFilePath))
	default:
		runner.logger.Warn("Could not read ignore file",
			zap.String("path", ignoreFilePath),
			zap.Error(ignoreReadError))
	}
	return validatedRootPath, options.exclusions, nil
}
