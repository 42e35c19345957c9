package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hexciv/experiments/metrics"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "matches.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveMatch(t *testing.T) {
	t.Run("a saved match reads back unchanged", func(t *testing.T) {
		s := openTemp(t)
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		m := Match{
			Seed:       42,
			MapSize:    "Duel",
			Players:    2,
			Winner:     1,
			Turns:      87,
			TotalMoves: 912,
			Duration:   1500 * time.Millisecond,
			FinalHash:  0xfedcba9876543210,
			CreatedAt:  created,
		}
		id, err := s.SaveMatch(m)
		require.NoError(t, err)
		_, err = uuid.Parse(id)
		require.NoError(t, err)

		got, err := s.RecentMatches(5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		m.ID = id
		require.True(t, created.Equal(got[0].CreatedAt))
		got[0].CreatedAt = created
		require.Equal(t, m, got[0])
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := openTemp(t)
		m := Match{ID: "fixed", MapSize: "Duel"}
		_, err := s.SaveMatch(m)
		require.NoError(t, err)
		_, err = s.SaveMatch(m)
		require.Error(t, err)
	})
}

func TestRecentMatches(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := s.SaveMatch(Match{Seed: int64(i), MapSize: "Duel", CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	got, err := s.RecentMatches(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int64{4, 3, 2}, []int64{got[0].Seed, got[1].Seed, got[2].Seed})
}

func TestWinCounts(t *testing.T) {
	s := openTemp(t)
	for _, winner := range []int{1, 2, 1, 0, 1} {
		_, err := s.SaveMatch(Match{MapSize: "Duel", Winner: winner})
		require.NoError(t, err)
	}

	counts, err := s.WinCounts()
	require.NoError(t, err)
	require.Equal(t, []WinCount{{Winner: 0, Games: 1}, {Winner: 1, Games: 3}, {Winner: 2, Games: 1}}, counts)
}

func TestNewMatch(t *testing.T) {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m := NewMatch(metrics.GameRecord{
		ID:      3,
		Seed:    9,
		MapSize: "Tiny",
		GameMetric: metrics.GameMetric{
			Players:   3,
			Winner:    2,
			Turns:     40,
			EndTime:   end,
			FinalHash: 7,
		},
	})
	require.NotEmpty(t, m.ID)
	require.Equal(t, int64(9), m.Seed)
	require.Equal(t, "Tiny", m.MapSize)
	require.Equal(t, 2, m.Winner)
	require.Equal(t, uint64(7), m.FinalHash)
	require.Equal(t, end, m.CreatedAt)
}
