package gamemaster

import (
	"sync"

	"github.com/rs/zerolog/log"

	"hexciv/game"
	"hexciv/hex"
	"hexciv/world"
)

// DefaultBuffer is the subscriber channel capacity used when none is given.
const DefaultBuffer = 64

// Update is one accepted command and what it caused.
type Update struct {
	Command game.Command
	Events  []game.Event
	Hash    game.StateHash
	State   game.StateSnapshot
}

// Master serializes access to a Game. Commands take the write lock and
// queries take the read lock, so readers always see a post-command state.
type Master struct {
	mu          sync.RWMutex
	game        *game.Game
	subscribers map[int]chan Update
	nextID      int
	closed      bool
}

func New(g *game.Game) *Master {
	return &Master{
		game:        g,
		subscribers: map[int]chan Update{},
	}
}

// Play validates and applies cmd, then fans the events out to subscribers.
// Subscribers that are not keeping up miss the update.
func (m *Master) Play(cmd game.Command) ([]game.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events, err := m.game.ExecuteCommand(cmd)
	if err != nil {
		return nil, err
	}
	u := Update{
		Command: cmd,
		Events:  events,
		Hash:    m.game.Hash(),
		State:   m.game.QueryGameState(),
	}
	for id, ch := range m.subscribers {
		select {
		case ch <- u:
		default:
			log.Warn().Msgf("subscriber %d is full, dropping %s update", id, cmd.Kind())
		}
	}
	if u.State.IsGameOver {
		m.closeAll()
	}
	return events, nil
}

// ExecuteCommand is Play under the name agents drive games with.
func (m *Master) ExecuteCommand(cmd game.Command) ([]game.Event, error) {
	return m.Play(cmd)
}

// Subscribe returns a channel of updates and a function that cancels the
// subscription. The channel is closed on cancel or when the game ends.
func (m *Master) Subscribe(buffer int) (<-chan Update, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Update, buffer)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	id := m.nextID
	m.nextID++
	m.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subscribers[id]; ok {
				delete(m.subscribers, id)
				close(sub)
			}
		})
	}
}

func (m *Master) closeAll() {
	for id, ch := range m.subscribers {
		close(ch)
		delete(m.subscribers, id)
	}
	m.closed = true
}

func (m *Master) QueryUnits(owner *world.PlayerID) []game.UnitSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.QueryUnits(owner)
}

func (m *Master) QueryCities(owner *world.PlayerID) []game.CitySnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.QueryCities(owner)
}

func (m *Master) QueryTile(c hex.Coord) (game.TileSnapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.QueryTile(c)
}

func (m *Master) QueryCoords() []hex.Coord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.QueryCoords()
}

func (m *Master) QueryGameState() game.StateSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.QueryGameState()
}

func (m *Master) QueryReachable(h world.Handle) map[hex.Coord]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.QueryReachable(h)
}

func (m *Master) Hash() game.StateHash {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.Hash()
}

// Evaluate scores the position for p with the given evaluator.
func (m *Master) Evaluate(p world.PlayerID, evaluate game.Evaluator) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return evaluate(m.game, p)
}
