// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tyemirov/snapshot/internal/config"
	"github.com/tyemirov/snapshot/internal/patterns"
	"github.com/tyemirov/snapshot/internal/services/clipboard"
	"github.com/tyemirov/snapshot/internal/tokenizer"
	"github.com/tyemirov/snapshot/internal/utils"
)

const (
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	exclusionFlagName    = "exclude"
	exclusionShorthand   = "e"
	patternsFlagName     = "patterns"
	gitignoreFlagName    = "gitignore"
	interactiveFlagName  = "interactive"
	configFlagName       = "config"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	copyFlagName         = "copy"
	verboseFlagName      = "verbose"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	defaultRootPath      = "."
	versionTemplate      = "snapshot version: %s\n"
	configurationWritten = "Configuration written to %s\n"
	rootUse              = "snapshot [root]"
	rootShortDescription = "concatenate a project's text files into one document"
	rootLongDescription = `snapshot walks a project directory, prunes dependency caches, build output and
version control metadata, skips binary files, and writes every remaining text file
into a single document with its relative path and a fenced code block.

Without a root argument on a terminal, snapshot asks for the root and the exclusions.
Use --interactive to always ask.`
	rootUsageExample = `  # Snapshot the current directory using its .gitignore
  snapshot

  # Snapshot a project without its .gitignore, excluding logs and fixtures
  snapshot ./service --gitignore no -e '*.log' --patterns 'testdata,*.golden'

  # Write elsewhere, estimate tokens and copy to the clipboard
  snapshot . -o /tmp/context.txt --tokens --copy`
	initUse                      = "init"
	initShortDescription         = "write a default configuration file"
	outputFlagDescription        = "snapshot document path"
	exclusionFlagDescription     = "exclude files or directories matching pattern (repeatable)"
	patternsFlagDescription      = "comma-separated exclusion patterns"
	gitignoreFlagDescription     = "add patterns from <root>/.gitignore"
	interactiveFlagDescription   = "ask for root and exclusions"
	configFlagDescription        = "configuration file path"
	tokensFlagDescription        = "print a token estimate of the document"
	modelFlagDescription         = "tokenizer model used for the estimate"
	copyFlagDescription          = "copy the document to the clipboard"
	verboseFlagDescription       = "log every skipped file and directory"
	versionFlagDescription       = "display application version"
	globalFlagDescription        = "write ~/.snapshot/config.yaml instead of ./config.yaml"
	forceFlagDescription         = "overwrite an existing configuration file"
	loadConfigurationErrorFormat = "load configuration: %w"
)

// applicationDependencies are the collaborators a command run needs from its environment.
type applicationDependencies struct {
	logger             *zap.Logger
	level              zap.AtomicLevel
	isInputInteractive func() bool
	copier             clipboard.Copier
	newCounter         counterFactory
}

// rootFlags holds raw flag values before configuration defaults are applied.
type rootFlags struct {
	outputPath      string
	exclusions      []string
	commaPatterns   string
	useGitignore    bool
	interactive     bool
	configPath      string
	tokensEnabled   bool
	tokenModel      string
	copyToClipboard bool
	verbose         bool
	showVersion     bool
}

// Execute runs the snapshot application.
func Execute(logger *zap.Logger, level zap.AtomicLevel) error {
	rootCommand := createRootCommand(applicationDependencies{
		logger: logger,
		level:  level,
		isInputInteractive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies applicationDependencies) *cobra.Command {
	var flags rootFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			if flags.verbose {
				dependencies.level.SetLevel(zap.DebugLevel)
			}
			applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
				ExplicitFilePath: flags.configPath,
			})
			if loadError != nil {
				return fmt.Errorf(loadConfigurationErrorFormat, loadError)
			}

			options := resolveSnapshotOptions(command, flags, applicationConfiguration.Snapshot)
			if len(arguments) == 1 {
				options.rootPath = arguments[0]
			}
			options.interactive = flags.interactive || (options.rootPath == "" && dependencies.isInputInteractive())

			runner := &snapshotRunner{
				logger:     dependencies.logger,
				prompter:   newConsolePrompter(command.InOrStdin(), command.OutOrStdout()),
				output:     command.OutOrStdout(),
				copier:     dependencies.copier,
				newCounter: dependencies.newCounter,
			}
			return runner.run(options)
		},
	}

	rootFlagSet := rootCommand.Flags()
	rootFlagSet.StringVarP(&flags.outputPath, outputFlagName, outputFlagShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	rootFlagSet.StringArrayVarP(&flags.exclusions, exclusionFlagName, exclusionShorthand, nil, exclusionFlagDescription)
	rootFlagSet.StringVar(&flags.commaPatterns, patternsFlagName, "", patternsFlagDescription)
	registerBooleanFlag(rootFlagSet, &flags.useGitignore, gitignoreFlagName, true, gitignoreFlagDescription)
	registerBooleanFlag(rootFlagSet, &flags.interactive, interactiveFlagName, false, interactiveFlagDescription)
	rootFlagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootFlagSet, &flags.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootFlagSet.StringVar(&flags.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerBooleanFlag(rootFlagSet, &flags.copyToClipboard, copyFlagName, false, copyFlagDescription)
	rootFlagSet.BoolVar(&flags.verbose, verboseFlagName, false, verboseFlagDescription)
	rootFlagSet.BoolVar(&flags.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	return rootCommand
}

// resolveSnapshotOptions applies flag > configuration file > built-in default precedence.
func resolveSnapshotOptions(command *cobra.Command, flags rootFlags, configuration config.SnapshotConfiguration) snapshotOptions {
	changed := command.Flags().Changed

	options := snapshotOptions{
		outputPath:      flags.outputPath,
		useGitignore:    flags.useGitignore,
		copyToClipboard: flags.copyToClipboard,
		tokensEnabled:   flags.tokensEnabled,
		tokenModel:      flags.tokenModel,
	}
	if !changed(outputFlagName) && configuration.Output != "" {
		options.outputPath = configuration.Output
	}
	if !changed(gitignoreFlagName) && configuration.UseGitignore != nil {
		options.useGitignore = *configuration.UseGitignore
	}
	if !changed(copyFlagName) && configuration.Clipboard != nil {
		options.copyToClipboard = *configuration.Clipboard
	}
	if !changed(tokensFlagName) && configuration.Tokens.Enabled != nil {
		options.tokensEnabled = *configuration.Tokens.Enabled
	}
	if !changed(modelFlagName) && configuration.Tokens.Model != "" {
		options.tokenModel = configuration.Tokens.Model
	}

	options.exclusions = patterns.FromLines(configuration.Exclude).Union(
		patterns.FromLines(flags.exclusions),
		patterns.FromCommaSeparated(flags.commaPatterns),
	)
	return options
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: overwrite})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWritten, writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &writeGlobal, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &overwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}
