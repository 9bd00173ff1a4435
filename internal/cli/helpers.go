package cli

import (
	"fmt"

	"github.com/glorpus-work/apkg/internal/logger"
	"github.com/glorpus-work/apkg/pkg/artifact"
	"github.com/glorpus-work/apkg/pkg/artifact/database"
	"github.com/glorpus-work/apkg/pkg/config"
	"github.com/glorpus-work/apkg/pkg/http"
	"github.com/glorpus-work/apkg/pkg/index"
	"github.com/glorpus-work/apkg/pkg/orchestrator"
	"github.com/glorpus-work/apkg/pkg/process"
)

// These variables will be set by the main package
var (
	RootDir    *string
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
	AssumeYes  *bool
)

func flagString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func flagBool(p *bool) bool {
	return p != nil && *p
}

// configFilePath is --config, or the settings file below --root (or the working directory).
func configFilePath() string {
	if path := flagString(ConfigPath); path != "" {
		return path
	}
	root := flagString(RootDir)
	if root == "" {
		root = config.DefaultRootDir
	}
	return config.NewLayout(root).ConfigFile()
}

// loadConfig loads the settings file, applies the global flags and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if root := flagString(RootDir); root != "" {
		cfg.Settings.RootDir = root
	}
	level := cfg.Settings.LogLevel
	if flagBool(Verbose) {
		level = "debug"
	}
	logger.InitLogger(level, flagBool(NoColor))

	return cfg, nil
}

func loadRegistry(cfg *config.Config) *database.Registry {
	return database.NewRegistry(cfg.Layout().InstalledDir())
}

func loadIndexManager(cfg *config.Config) *index.ManagerImpl {
	return index.NewManager(http.NewHTTPClient(cfg.Settings.HTTPTimeout), cfg.PlatformTag(), cfg.Layout())
}

func loadArtifactManager(cfg *config.Config, confirmer artifact.Confirmer) *artifact.ManagerImpl {
	return artifact.NewManager(artifact.Options{
		Registry:   loadRegistry(cfg),
		Confirmer:  confirmer,
		Runner:     process.NewExecRunner(),
		Platform:   cfg.PlatformTag(),
		Layout:     cfg.Layout(),
		ScriptsDir: cfg.Settings.ScriptsDir,
	})
}

func loadOrchestrator(cfg *config.Config, confirmer artifact.Confirmer, hooks orchestrator.Hooks) *orchestrator.Orchestrator {
	return orchestrator.New(
		loadIndexManager(cfg),
		http.NewHTTPClient(cfg.Settings.HTTPTimeout),
		loadArtifactManager(cfg, confirmer),
		cfg.Layout(),
		hooks,
	)
}

// initLogging sets up logging for commands that do not need the settings file.
func initLogging() {
	level := config.DefaultLogLevel
	if flagBool(Verbose) {
		level = "debug"
	}
	logger.InitLogger(level, flagBool(NoColor))
}
