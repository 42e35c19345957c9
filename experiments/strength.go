package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"hexciv/agent"
	"hexciv/experiments/metrics"
)

// NoiseResult is how a noisy seat fared against a noiseless baseline.
type NoiseResult struct {
	Noise  float64
	Games  int
	Wins   int // Games won by the noisy seat
	Losses int
	Draws  int
}

// RunNoiseToStrength pairs a noiseless baseline in seat one against a
// controller at each noise level in seat two. base supplies the map, the
// players and the game count. Its Agents are ignored.
func RunNoiseToStrength(base SelfPlayConfig, levels []float64) ([]NoiseResult, error) {
	if len(base.Players) != 2 {
		return nil, fmt.Errorf("experiments: noise matchups need exactly two players, got %d", len(base.Players))
	}
	baseline := metrics.AgentConfig{ID: 0, MaxIterations: agent.DefaultMaxIterations}

	var results []NoiseResult
	for i, noise := range levels {
		log.Info().Msgf("starting matchup %d of %d with noise %.2f...", i+1, len(levels), noise)

		cfg := base
		cfg.Name = fmt.Sprintf("%s_noise_%d", nameOr(base.Name, "strength"), i+1)
		cfg.Agents = []metrics.AgentConfig{
			baseline,
			{ID: i + 1, MaxIterations: agent.DefaultMaxIterations, Noise: noise, Seed: uint64(i + 1)},
		}
		report, err := RunSelfPlay(cfg)
		if err != nil {
			return results, err
		}

		wins := report.Wins()
		results = append(results, NoiseResult{
			Noise:  noise,
			Games:  len(report.Games),
			Wins:   wins[2],
			Losses: wins[1],
			Draws:  wins[0],
		})
		log.Info().Msgf("completed matchup %d of %d", i+1, len(levels))
	}
	return results, nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
