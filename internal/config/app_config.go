package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tyemirov/repomd/internal/tokenizer"
	"github.com/tyemirov/repomd/internal/utils"
)

const (
	// EnvironmentPrefix prefixes every environment variable consulted by repomd.
	EnvironmentPrefix = "REPOMD"

	outputKey        = "output"
	clipboardKey     = "clipboard"
	verboseKey       = "verbose"
	tokensEnabledKey = "tokens.enabled"
	tokensModelKey   = "tokens.model"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	HomeDirectory    string
	SkipEnvironment  bool
}

// ApplicationConfiguration holds configured defaults. Nil pointers and empty
// strings mean "not configured".
type ApplicationConfiguration struct {
	Output    string             `mapstructure:"output"`
	Clipboard *bool              `mapstructure:"clipboard"`
	Verbose   *bool              `mapstructure:"verbose"`
	Tokens    TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Settings is the configuration with defaults applied.
type Settings struct {
	OutputPath    string
	Clipboard     bool
	Verbose       bool
	TokensEnabled bool
	TokenModel    string
}

// LoadApplicationConfiguration loads configuration from the global file, the
// local (or explicit) file and REPOMD_* environment variables, in increasing
// order of precedence. A .env file in the working directory is loaded into the
// process environment first; variables already set are not overwritten.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, mustExist := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, mustExist)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if options.SkipEnvironment {
		return merged, nil
	}
	if envErr := loadEnvironmentFile(workingDirectory); envErr != nil {
		return ApplicationConfiguration{}, envErr
	}
	return merged.Merge(loadEnvironmentConfiguration()), nil
}

// Settings applies defaults to the configuration.
func (config ApplicationConfiguration) Settings() Settings {
	settings := Settings{
		OutputPath: utils.DefaultOutputFileName,
		TokenModel: tokenizer.DefaultModel,
	}
	if config.Output != "" {
		settings.OutputPath = config.Output
	}
	if config.Clipboard != nil {
		settings.Clipboard = *config.Clipboard
	}
	if config.Verbose != nil {
		settings.Verbose = *config.Verbose
	}
	if config.Tokens.Enabled != nil {
		settings.TokensEnabled = *config.Tokens.Enabled
	}
	if config.Tokens.Model != "" {
		settings.TokenModel = config.Tokens.Model
	}
	return settings
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.Verbose != nil {
		result.Verbose = cloneBool(override.Verbose)
	}
	if override.Tokens.Enabled != nil {
		result.Tokens.Enabled = cloneBool(override.Tokens.Enabled)
	}
	if override.Tokens.Model != "" {
		result.Tokens.Model = override.Tokens.Model
	}
	return result
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, bool) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, true
		}
		return filepath.Join(workingDirectory, explicitPath), true
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), false
}

func loadConfigurationFromPath(path string, mustExist bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !mustExist {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		reader.SetConfigType("yaml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

func loadEnvironmentFile(workingDirectory string) error {
	environmentFilePath := filepath.Join(workingDirectory, utils.EnvironmentFileName)
	if _, statErr := os.Stat(environmentFilePath); statErr != nil {
		if os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("stat environment file %s: %w", environmentFilePath, statErr)
	}
	if loadErr := godotenv.Load(environmentFilePath); loadErr != nil {
		return fmt.Errorf("load environment file %s: %w", environmentFilePath, loadErr)
	}
	return nil
}

func loadEnvironmentConfiguration() ApplicationConfiguration {
	reader := viper.New()
	reader.SetEnvPrefix(EnvironmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{outputKey, clipboardKey, verboseKey, tokensEnabledKey, tokensModelKey} {
		_ = reader.BindEnv(key)
	}

	var config ApplicationConfiguration
	if reader.IsSet(outputKey) {
		config.Output = reader.GetString(outputKey)
	}
	if reader.IsSet(clipboardKey) {
		config.Clipboard = boolPointer(reader.GetBool(clipboardKey))
	}
	if reader.IsSet(verboseKey) {
		config.Verbose = boolPointer(reader.GetBool(verboseKey))
	}
	if reader.IsSet(tokensEnabledKey) {
		config.Tokens.Enabled = boolPointer(reader.GetBool(tokensEnabledKey))
	}
	if reader.IsSet(tokensModelKey) {
		config.Tokens.Model = reader.GetString(tokensModelKey)
	}
	return config
}

func boolPointer(value bool) *bool {
	return &value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
