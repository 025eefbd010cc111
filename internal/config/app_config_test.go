package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tyemirov/repomd/internal/tokenizer"
	"github.com/tyemirov/repomd/internal/utils"
)

type configTestCase struct {
	name          string
	globalContent string
	localContent  string
	explicitPath  string
	expected      Settings
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:     "defaults_without_files",
			expected: Settings{OutputPath: utils.DefaultOutputFileName, TokenModel: tokenizer.DefaultModel},
		},
		{
			name:          "local_overrides_global",
			globalContent: "output: global.md\nclipboard: true\ntokens:\n  enabled: true\n  model: gpt-4\n",
			localContent:  "output: local.md\ntokens:\n  model: gpt-4o-mini\n",
			expected: Settings{
				OutputPath:    "local.md",
				Clipboard:     true,
				TokensEnabled: true,
				TokenModel:    "gpt-4o-mini",
			},
		},
		{
			name:          "explicit_path_replaces_local_file",
			globalContent: "verbose: true\n",
			localContent:  "output: ignored.md\n",
			explicitPath:  "custom.yaml",
			expected: Settings{
				OutputPath: "custom.md",
				Verbose:    true,
				TokenModel: tokenizer.DefaultModel,
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := t.TempDir()
			workingDirectory := t.TempDir()
			if testCase.globalContent != "" {
				globalDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
				if err := os.MkdirAll(globalDirectory, 0o755); err != nil {
					t.Fatalf("mkdir global: %v", err)
				}
				writeTestFile(t, filepath.Join(globalDirectory, utils.GlobalConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeTestFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeTestFile(t, filepath.Join(workingDirectory, testCase.explicitPath), "output: custom.md\n")
			}

			configuration, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: testCase.explicitPath,
				HomeDirectory:    homeDirectory,
				SkipEnvironment:  true,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if settings := configuration.Settings(); settings != testCase.expected {
				t.Fatalf("unexpected settings: got %+v want %+v", settings, testCase.expected)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "missing.yaml",
		HomeDirectory:    t.TempDir(),
		SkipEnvironment:  true,
	})
	if err == nil {
		t.Fatalf("expected error for a missing explicit configuration file")
	}
}

func TestLoadApplicationConfigurationEnvironmentOverridesFiles(t *testing.T) {
	workingDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), "output: local.md\ntokens:\n  enabled: false\n")
	t.Setenv("REPOMD_OUTPUT", "from-env.md")
	t.Setenv("REPOMD_TOKENS_ENABLED", "true")

	configuration, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		HomeDirectory:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	settings := configuration.Settings()
	if settings.OutputPath != "from-env.md" {
		t.Fatalf("expected environment output path, got %q", settings.OutputPath)
	}
	if !settings.TokensEnabled {
		t.Fatalf("expected tokens to be enabled by the environment")
	}
}

func TestLoadApplicationConfigurationReadsDotEnv(t *testing.T) {
	workingDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(workingDirectory, utils.EnvironmentFileName), "REPOMD_TOKENS_MODEL=gpt-4-turbo\n")
	t.Setenv("REPOMD_TOKENS_MODEL", "")
	os.Unsetenv("REPOMD_TOKENS_MODEL")

	configuration, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		HomeDirectory:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if model := configuration.Settings().TokenModel; model != "gpt-4-turbo" {
		t.Fatalf("expected model from .env, got %q", model)
	}
}
