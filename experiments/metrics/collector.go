package metrics

import (
	"sync/atomic"
	"time"
)

// RunMetric aggregates the counters of a whole simulation run.
type RunMetric struct {
	Games    int
	Draws    int
	Failures int
	Turns    int
	Captures int
	Forfeits int
	Duration time.Duration
}

// GameMetric describes one simulated game.
type GameMetric struct {
	Seed        uint64
	Agent       string
	Players     []string // in turn order
	Profiles    []string // by seat, empty unless profile agents played
	Winner      string
	Draw        bool
	Turns       int
	Captures    int
	Forfeits    int
	Completions int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Err         string // set when the game was aborted
}

// TurnMetric describes one resolved turn.
type TurnMetric struct {
	Turn      int
	Player    string
	Roll      int
	Move      string // empty on a forfeit
	Captured  string
	ExtraTurn bool
}

// Collector is shared by all workers of a run.
type Collector interface {
	Start()
	AddTurn(forfeit, capture bool)
	AddGame(draw bool)
	AddFailure()
	Complete() RunMetric
}

type collector struct {
	startTime time.Time
	games     atomic.Int64
	draws     atomic.Int64
	failures  atomic.Int64
	turns     atomic.Int64
	captures  atomic.Int64
	forfeits  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddTurn(forfeit, capture bool) {
	m.turns.Add(1)
	if forfeit {
		m.forfeits.Add(1)
	}
	if capture {
		m.captures.Add(1)
	}
}

func (m *collector) AddGame(draw bool) {
	m.games.Add(1)
	if draw {
		m.draws.Add(1)
	}
}

func (m *collector) AddFailure() {
	m.failures.Add(1)
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Games:    int(m.games.Load()),
		Draws:    int(m.draws.Load()),
		Failures: int(m.failures.Load()),
		Turns:    int(m.turns.Load()),
		Captures: int(m.captures.Load()),
		Forfeits: int(m.forfeits.Load()),
		Duration: time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                        {}
func (m *dummyCollector) AddTurn(forfeit, capture bool) {}
func (m *dummyCollector) AddGame(draw bool)             {}
func (m *dummyCollector) AddFailure()                   {}
func (m *dummyCollector) Complete() RunMetric           { return RunMetric{} }
