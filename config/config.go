package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"hexciv/agent"
	"hexciv/engine"
	"hexciv/game"
	"hexciv/world"
)

//go:embed defaults/default.yaml
var defaultYAML []byte

type Config struct {
	Map    world.MapConfig    `yaml:"map"`
	Rules  game.StandardRules `yaml:"rules"`
	Agent  AgentConfig        `yaml:"agent"`
	Engine EngineConfig       `yaml:"engine"`
}

type AgentConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Noise         float64 `yaml:"noise"`
}

type EngineConfig struct {
	MaxTurns int      `yaml:"max_turns"`
	Players  []string `yaml:"players"`
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := decode(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return cfg
}

// Load reads the configuration. Search order: customPath ->
// ~/.hexciv/config.yaml -> ./configs/hexciv.yaml -> embedded default.
// Files only need to name the fields they override.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		return loadFile(customPath)
	}
	for _, path := range searchPaths() {
		cfg, err := loadFile(path)
		if err == nil {
			log.Debug().Msgf("loaded config from %s", path)
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msgf("skipping config %s", path)
		}
	}
	return Default(), nil
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".hexciv", "config.yaml"))
	}
	return append(paths, filepath.Join("configs", "hexciv.yaml"))
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// decode rejects keys that match no field, so typos do not pass silently.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if w, h := c.Map.Dimensions(); w <= 0 || h <= 0 {
		return fmt.Errorf("map dimensions %dx%d must be positive", w, h)
	}
	if len(c.Engine.Players) < 2 {
		return fmt.Errorf("need at least two players, got %d", len(c.Engine.Players))
	}
	if c.Rules.GrowthBase <= 0 || c.Rules.TerritoryRange < 0 {
		return errors.New("rules: growth_base must be positive and territory_range non-negative")
	}
	if c.Agent.Noise < 0 {
		return errors.New("agent: noise must not be negative")
	}
	return nil
}

// ControllerOptions configures a controller. Each seat should get its own
// seed so noisy controllers do not mirror each other.
func (c Config) ControllerOptions(seed uint64) []agent.Option {
	return []agent.Option{
		agent.WithMaxIterations(c.Agent.MaxIterations),
		agent.WithNoise(c.Agent.Noise, seed),
	}
}

func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{engine.WithMaxTurns(c.Engine.MaxTurns)}
}

// GameRules returns a copy of the configured rules.
func (c Config) GameRules() *game.StandardRules {
	rules := c.Rules
	return &rules
}
