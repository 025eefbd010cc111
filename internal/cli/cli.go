// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tyemirov/repomd/internal/commands"
	"github.com/tyemirov/repomd/internal/config"
	"github.com/tyemirov/repomd/internal/output"
	"github.com/tyemirov/repomd/internal/services/clipboard"
	"github.com/tyemirov/repomd/internal/tokenizer"
	"github.com/tyemirov/repomd/internal/types"
	"github.com/tyemirov/repomd/internal/utils"
)

const (
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	configFlagName       = "config"
	clipboardFlagName    = "clipboard"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	verboseFlagName      = "verbose"
	versionFlagName      = "version"
	versionTemplate      = "repomd version: %s\n"
	rootUse              = "repomd <folder>"
	rootShortDescription = "Flatten a folder into a single markdown document"
	rootLongDescription  = `repomd walks a folder and writes one markdown document holding its README,
an indented listing of every file and folder, and the contents of every text file.
Files matching the shell-glob patterns of the folder's .gitignore are left out of the
content sections. The document is written to repository.md in the working directory
unless --output names another path.`
	rootUsageExample = `  # Flatten the current project
  repomd .

  # Write elsewhere and copy the result to the clipboard
  repomd ./service -o /tmp/service.md --clipboard

  # Report the token count of the document
  repomd . --tokens --model gpt-4o

  # Print the document instead of writing a file
  repomd . -o - | less`

	outputFlagDescription    = "path of the generated document (\"-\" writes it to standard output)"
	configFlagDescription    = "configuration file (defaults to ./" + utils.ConfigFileName + ")"
	clipboardFlagDescription = "copy the generated document to the clipboard"
	tokensFlagDescription    = "count tokens of the generated document"
	modelFlagDescription     = "tokenizer model to use for token counting"
	verboseFlagDescription   = "log every decision at debug level"
	versionFlagDescription   = "display application version"

	standardOutputPath   = "-"
	folderMissingFormat  = "Error: Folder '%s' does not exist.\n"
	successMessageFormat = "%s created successfully from '%s'\n"

	errorLoggerFormat      = "creating logger: %w"
	errorConfigFormat      = "loading configuration: %w"
	warningClipboardFailed = "failed to copy document to clipboard"
	warningTokensFailed    = "failed to count document tokens"
	logClipboardCopied     = "copied document to clipboard"
	logSummary             = "repository document written"
)

// rootOptions holds the raw flag values of the root command.
type rootOptions struct {
	outputPath       string
	configPath       string
	clipboardEnabled bool
	tokensEnabled    bool
	tokenModel       string
	verbose          bool
	showVersion      bool
}

// dependencies are the collaborators of a run, replaceable in tests.
type dependencies struct {
	copier      clipboard.Copier
	newCounter  func(tokenizer.Config) (tokenizer.Counter, string, error)
	newLogger   func(verbose bool) (*zap.Logger, error)
	loadOptions config.LoadOptions
}

func defaultDependencies() dependencies {
	return dependencies{
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
		newLogger:  utils.NewApplicationLogger,
	}
}

// Execute runs the repomd application.
func Execute() error {
	rootCommand := createRootCommand(defaultDependencies())
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(runDependencies dependencies) *cobra.Command {
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(command, arguments)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return runRepository(command, arguments[0], options, runDependencies)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerToggleFlag(flagSet, &options.clipboardEnabled, clipboardFlagName, false, clipboardFlagDescription)
	registerToggleFlag(flagSet, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerToggleFlag(flagSet, &options.verbose, verboseFlagName, false, verboseFlagDescription)
	registerToggleFlag(flagSet, &options.showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// runRepository writes the repository document for folder. The folder is
// checked before configuration is read.
func runRepository(command *cobra.Command, folder string, options rootOptions, runDependencies dependencies) error {
	stdout := command.OutOrStdout()
	if _, statError := os.Stat(folder); statError != nil {
		fmt.Fprintf(stdout, folderMissingFormat, folder)
		return nil
	}

	loadOptions := runDependencies.loadOptions
	loadOptions.ExplicitFilePath = options.configPath
	configuration, configurationError := config.LoadApplicationConfiguration(loadOptions)
	if configurationError != nil {
		return fmt.Errorf(errorConfigFormat, configurationError)
	}
	settings := applyFlagOverrides(command.Flags(), configuration.Settings(), options)

	logger, loggerError := runDependencies.newLogger(settings.Verbose)
	if loggerError != nil {
		return fmt.Errorf(errorLoggerFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	builder := commands.RepositoryBuilder{
		Root:            folder,
		Logger:          logger,
		CaptureDocument: settings.Clipboard || settings.TokensEnabled,
	}
	writesToStandardOutput := settings.OutputPath == standardOutputPath
	var summary types.RepositorySummary
	var buildError error
	if writesToStandardOutput {
		summary, buildError = builder.Build(stdout)
	} else {
		summary, buildError = builder.WriteRepositoryFile(settings.OutputPath)
	}
	if buildError != nil {
		return buildError
	}

	reportSummary(logger, summary, settings, runDependencies)
	if settings.Clipboard {
		copyDocument(logger, summary.Document, runDependencies.copier)
	}

	if !writesToStandardOutput {
		fmt.Fprintf(stdout, successMessageFormat, settings.OutputPath, folder)
	}
	return nil
}

// applyFlagOverrides lets flags given on the command line win over configuration.
func applyFlagOverrides(flagSet *pflag.FlagSet, settings config.Settings, options rootOptions) config.Settings {
	if flagSet.Changed(outputFlagName) {
		settings.OutputPath = options.outputPath
	}
	if flagSet.Changed(clipboardFlagName) {
		settings.Clipboard = options.clipboardEnabled
	}
	if flagSet.Changed(tokensFlagName) {
		settings.TokensEnabled = options.tokensEnabled
	}
	if flagSet.Changed(modelFlagName) {
		settings.TokenModel = options.tokenModel
	}
	if flagSet.Changed(verboseFlagName) {
		settings.Verbose = options.verbose
	}
	return settings
}

// reportSummary logs the summary line, at info level when tokens were asked
// for and at debug level otherwise. Token counting failures only warn.
func reportSummary(logger *zap.Logger, summary types.RepositorySummary, settings config.Settings, runDependencies dependencies) {
	if !settings.TokensEnabled {
		logger.Debug(logSummary, zap.String("summary", output.FormatSummaryLine(summary)))
		return
	}

	counter, model, counterError := runDependencies.newCounter(tokenizer.Config{Model: settings.TokenModel})
	if counterError != nil {
		logger.Warn(warningTokensFailed, zap.String("model", settings.TokenModel), zap.Error(counterError))
		return
	}
	tokens, countError := tokenizer.CountDocument(counter, summary.Document)
	if countError != nil {
		logger.Warn(warningTokensFailed, zap.String("model", model), zap.Error(countError))
		return
	}
	summary.Tokens = tokens
	summary.TokenModel = model
	logger.Info(output.FormatSummaryLine(summary))
}

func copyDocument(logger *zap.Logger, document string, copier clipboard.Copier) {
	if copyError := copier.Copy(document); copyError != nil {
		logger.Warn(warningClipboardFailed, zap.Error(copyError))
		return
	}
	logger.Debug(logClipboardCopied, zap.Int("bytes", len(document)))
}
