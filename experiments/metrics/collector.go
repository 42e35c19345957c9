package metrics

import (
	"sync/atomic"
	"time"
)

// DecisionMetric describes one controller turn.
type DecisionMetric struct {
	Duration   time.Duration
	Candidates int
	Commands   int
	Rejections int
	ForcedEnd  bool
}

type MoveMetric struct {
	Turn       int
	Player     int // Player ID
	Evaluation float64
	DecisionMetric
}

type GameMetric struct {
	Players    int
	Winner     int // Player ID, 0 on a draw or when the turn limit is hit
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Turns      int
	TotalMoves int
	FinalHash  uint64
}

type Collector interface {
	Start()
	AddCandidates(n int)
	AddCommand()
	AddRejection()
	SetForcedEnd(value bool)
	Complete() DecisionMetric
}

type collector struct {
	startTime  time.Time
	candidates atomic.Int32
	commands   atomic.Int32
	rejections atomic.Int32
	forcedEnd  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new turn.
func (m *collector) Start() {
	m.startTime = time.Now()
	m.candidates.Store(0)
	m.commands.Store(0)
	m.rejections.Store(0)
	m.forcedEnd.Store(false)
}

func (m *collector) AddCandidates(n int) {
	m.candidates.Add(int32(n))
}

func (m *collector) AddCommand() {
	m.commands.Add(1)
}

func (m *collector) AddRejection() {
	m.rejections.Add(1)
}

func (m *collector) SetForcedEnd(value bool) {
	m.forcedEnd.Store(value)
}

func (m *collector) Complete() DecisionMetric {
	return DecisionMetric{
		Duration:   time.Since(m.startTime),
		Candidates: int(m.candidates.Load()),
		Commands:   int(m.commands.Load()),
		Rejections: int(m.rejections.Load()),
		ForcedEnd:  m.forcedEnd.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) AddCandidates(n int)      {}
func (m *dummyCollector) AddCommand()              {}
func (m *dummyCollector) AddRejection()            {}
func (m *dummyCollector) SetForcedEnd(value bool)  {}
func (m *dummyCollector) Complete() DecisionMetric { return DecisionMetric{} }
