package experiments

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hexciv/agent"
	"hexciv/engine"
	"hexciv/experiments/metrics"
	"hexciv/game"
	"hexciv/gamemaster"
	"hexciv/storage"
	"hexciv/world"
)

var ErrAgentCount = errors.New("experiments: one agent config per player is required")

// SelfPlayConfig describes a batch of games. Game i is generated from
// Map.Seed+i, and every seat keeps its agent config across the batch.
type SelfPlayConfig struct {
	Name     string
	Games    int
	Map      world.MapConfig
	Rules    game.Rules
	Players  []string
	Agents   []metrics.AgentConfig // Defaults to one plain controller per player
	MaxTurns int
	OutDir   string         // CSV root, empty skips the CSV export
	Store    *storage.Store // Optional match record store
}

type Report struct {
	Games    []metrics.GameRecord
	Moves    []metrics.MoveRecord
	MatchIDs []string
	Dir      string // Where the CSV files went
}

// Wins counts games by winner, 0 standing for draws and unfinished games.
func (r Report) Wins() map[int]int {
	wins := map[int]int{}
	for _, g := range r.Games {
		wins[g.Winner]++
	}
	return wins
}

func RunSelfPlay(cfg SelfPlayConfig) (Report, error) {
	if cfg.Name == "" {
		cfg.Name = "selfplay"
	}
	agents := cfg.Agents
	if len(agents) == 0 {
		for i := range cfg.Players {
			agents = append(agents, metrics.AgentConfig{ID: i + 1, MaxIterations: agent.DefaultMaxIterations})
		}
	}
	if len(agents) != len(cfg.Players) {
		return Report{}, ErrAgentCount
	}

	var report Report
	log.Info().Msgf("starting %s experiment with %d games...", cfg.Name, cfg.Games)

	for i := 0; i < cfg.Games; i++ {
		mapCfg := cfg.Map
		mapCfg.Seed += int64(i)
		log.Info().Msgf("starting game %d of %d with seed %d...", i+1, cfg.Games, mapCfg.Seed)

		res, err := runGame(mapCfg, cfg, agents, i)
		if err != nil {
			return report, fmt.Errorf("experiments: game %d: %w", i+1, err)
		}
		record := metrics.GameRecord{
			ID:         i + 1,
			Seed:       mapCfg.Seed,
			MapSize:    mapCfg.Size.String(),
			GameMetric: res.Game,
		}
		report.Games = append(report.Games, record)
		for _, mm := range res.Moves {
			report.Moves = append(report.Moves, metrics.MoveRecord{
				Game:       record.ID,
				MoveMetric: mm,
			})
		}
		if cfg.Store != nil {
			id, err := cfg.Store.SaveMatch(storage.NewMatch(record))
			if err != nil {
				return report, fmt.Errorf("experiments: game %d: %w", i+1, err)
			}
			report.MatchIDs = append(report.MatchIDs, id)
		}

		log.Info().Msgf("completed game %d of %d after %d turns with winner: %d", i+1, cfg.Games, res.Game.Turns, res.Winner)
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	if cfg.OutDir == "" {
		return report, nil
	}
	dir, err := export(cfg.OutDir, cfg.Name, agents, report)
	if err != nil {
		return report, err
	}
	report.Dir = dir
	return report, nil
}

// runGame plays one game. Seat seeds shift with the game index so noisy
// controllers do not replay the same jitter every game.
func runGame(mapCfg world.MapConfig, cfg SelfPlayConfig, agents []metrics.AgentConfig, index int) (engine.Result, error) {
	master, err := gamemaster.NewLocal(mapCfg, cfg.Players, cfg.Rules)
	if err != nil {
		return engine.Result{}, err
	}
	controllers := make([]*agent.Controller, len(agents))
	for i, a := range agents {
		controllers[i] = agent.NewController(
			agent.WithMaxIterations(a.MaxIterations),
			agent.WithNoise(a.Noise, a.Seed+uint64(index)),
			agent.WithMetrics(),
		)
	}
	return engine.New(master, controllers, engine.WithMaxTurns(cfg.MaxTurns)).Run()
}

func export(root, name string, agents []metrics.AgentConfig, report Report) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("experiments: failed to create writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(agents); err != nil {
		return "", fmt.Errorf("experiments: failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", fmt.Errorf("experiments: failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", fmt.Errorf("experiments: failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
