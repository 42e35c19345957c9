package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hexciv/config"
	"hexciv/experiments"
	"hexciv/experiments/metrics"
	"hexciv/storage"
	"hexciv/world"
)

var (
	configPath string
	logLevel   string
	dbPath     string
)

var palette = []string{"red", "blue", "green", "yellow", "purple", "orange", "white", "black"}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hexciv",
		Short: "Deterministic turn-based hex strategy simulation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.hexciv/config.yaml, ./configs/hexciv.yaml, built-in)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", filepath.Join("~", ".hexciv", "matches.db"), "match record database, empty to disable")

	rootCmd.AddCommand(selfPlayCmd(), recordsCmd(), mapCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func selfPlayCmd() *cobra.Command {
	var (
		games    int
		seed     int64
		players  int
		size     string
		csvDir   string
		maxTurns int
		noise    float64
	)
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play a batch of games between greedy controllers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Map.Seed = seed
			}
			if cmd.Flags().Changed("map") {
				if err := cfg.Map.Size.UnmarshalText([]byte(size)); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("max-turns") {
				cfg.Engine.MaxTurns = maxTurns
			}
			if cmd.Flags().Changed("noise") {
				cfg.Agent.Noise = noise
			}
			names := cfg.Engine.Players
			if cmd.Flags().Changed("players") {
				names = playerNames(players)
			}

			agents := make([]metrics.AgentConfig, len(names))
			for i := range names {
				agents[i] = metrics.AgentConfig{
					ID:            i + 1,
					MaxIterations: cfg.Agent.MaxIterations,
					Noise:         cfg.Agent.Noise,
					Seed:          uint64(cfg.Map.Seed) + uint64(i)*7919,
				}
			}

			run := experiments.SelfPlayConfig{
				Name:     "selfplay",
				Games:    games,
				Map:      cfg.Map,
				Rules:    cfg.GameRules(),
				Players:  names,
				Agents:   agents,
				MaxTurns: cfg.Engine.MaxTurns,
				OutDir:   csvDir,
			}
			if dbPath != "" {
				store, err := storage.Open(dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
				run.Store = store
			}

			report, err := experiments.RunSelfPlay(run)
			if err != nil {
				return err
			}
			printReport(report, names)
			return nil
		},
	}
	cmd.Flags().IntVar(&games, "games", 1, "number of games")
	cmd.Flags().Int64Var(&seed, "seed", 42, "map seed of the first game")
	cmd.Flags().IntVar(&players, "players", 2, "number of players")
	cmd.Flags().StringVar(&size, "map", "duel", "map size: duel, tiny, small, standard, large, huge")
	cmd.Flags().StringVar(&csvDir, "csv", "", "directory for CSV game and turn records")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 300, "turn limit per game")
	cmd.Flags().Float64Var(&noise, "noise", 0, "score jitter for the controllers")
	return cmd
}

func recordsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Show recent self-play results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return fmt.Errorf("records need a --db path")
			}
			store, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			matches, err := store.RecentMatches(limit)
			if err != nil {
				return err
			}
			counts, err := store.WinCounts()
			if err != nil {
				return err
			}

			color.New(color.FgCyan, color.Bold).Printf("\nRecent matches (%d)\n", len(matches))
			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"ID", "Created", "Map", "Seed", "Players", "Winner", "Turns", "Moves", "Duration", "Hash"}),
			)
			for _, m := range matches {
				table.Append([]string{
					shortID(m.ID),
					m.CreatedAt.Format(time.DateTime),
					m.MapSize,
					strconv.FormatInt(m.Seed, 10),
					strconv.Itoa(m.Players),
					winnerLabel(m.Winner),
					strconv.Itoa(m.Turns),
					strconv.Itoa(m.TotalMoves),
					m.Duration.String(),
					strconv.FormatUint(m.FinalHash, 16),
				})
			}
			table.Render()

			color.New(color.FgCyan, color.Bold).Println("\nWins by seat")
			wins := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"Seat", "Games"}))
			for _, c := range counts {
				wins.Append([]string{winnerLabel(c.Winner), strconv.Itoa(c.Games)})
			}
			wins.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of matches to show")
	return cmd
}

func mapCmd() *cobra.Command {
	var (
		seed int64
		size string
	)
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Generate a map and print its terrain distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.Map.Seed = seed
			if err := cfg.Map.Size.UnmarshalText([]byte(size)); err != nil {
				return err
			}

			s := world.NewGenerator(cfg.Map).Generate()
			counts := map[world.Terrain]int{}
			resources, rivers := 0, 0
			for _, c := range s.Coords() {
				t, _ := s.Tile(c)
				counts[t.Terrain]++
				if t.Resource != world.NoResource {
					resources++
				}
				if t.Rivers != 0 {
					rivers++
				}
			}

			w, h := cfg.Map.Dimensions()
			color.New(color.FgCyan, color.Bold).Printf("\n%s map %dx%d, seed %d\n", cfg.Map.Size, w, h, seed)
			table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"Terrain", "Tiles", "Share"}))
			total := s.TileCount()
			for _, t := range world.Terrains() {
				if counts[t] == 0 {
					continue
				}
				share := 100 * float64(counts[t]) / float64(total)
				table.Append([]string{t.String(), strconv.Itoa(counts[t]), fmt.Sprintf("%.1f%%", share)})
			}
			table.Render()
			fmt.Printf("%d tiles, %d with resources, %d along rivers\n", total, resources, rivers)

			starts, err := world.StartPositions(s, len(cfg.Engine.Players))
			if err != nil {
				color.Yellow("no room for %d players: %v", len(cfg.Engine.Players), err)
				return nil
			}
			fmt.Printf("start positions for %d players: %v\n", len(starts), starts)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 42, "map seed")
	cmd.Flags().StringVar(&size, "size", "tiny", "map size: duel, tiny, small, standard, large, huge")
	return cmd
}

func printReport(report experiments.Report, names []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	titleColor.Printf("\nSelf-play: %d games\n", len(report.Games))
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Game", "Seed", "Winner", "Turns", "Moves", "Duration", "Hash"}),
	)
	for _, g := range report.Games {
		table.Append([]string{
			strconv.Itoa(g.ID),
			strconv.FormatInt(g.Seed, 10),
			seatName(names, g.Winner),
			strconv.Itoa(g.Turns),
			strconv.Itoa(g.TotalMoves),
			g.Duration.Round(time.Millisecond).String(),
			strconv.FormatUint(g.FinalHash, 16),
		})
	}
	table.Render()

	wins := report.Wins()
	for seat := range names {
		if n := wins[seat+1]; n > 0 {
			successColor.Printf("%s won %d of %d\n", names[seat], n, len(report.Games))
		}
	}
	if wins[0] > 0 {
		fmt.Printf("%d games without a winner\n", wins[0])
	}
	if report.Dir != "" {
		fmt.Printf("records written to %s\n", report.Dir)
	}
}

func playerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		if i < len(palette) {
			names[i] = palette[i]
		} else {
			names[i] = fmt.Sprintf("player%d", i+1)
		}
	}
	return names
}

func seatName(names []string, winner int) string {
	if winner <= 0 || winner > len(names) {
		return "-"
	}
	return names[winner-1]
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func winnerLabel(winner int) string {
	if winner == 0 {
		return "draw"
	}
	return strconv.Itoa(winner)
}
