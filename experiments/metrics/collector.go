package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	MaxDepth    int
	Discount    float64
	Duration    time.Duration
	RootMoves   int
	Nodes       int // Expanded search nodes below the root
	Samples     int // Moves drawn across all nodes, duplicates included
	EmptyNodes  int // Nodes whose sample size came out as 0
	KingCapture bool
}

type MoveMetric struct {
	Step   int
	Player string // Player color
	SearchMetric
}

type GameMetric struct {
	White      string
	Black      string
	Winner     string // Player color, "" for a draw
	Reason     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Reporter is implemented by players that can report metrics for their last search.
type Reporter interface {
	SearchMetric() SearchMetric
}

type Collector interface {
	Start(maxDepth int, discount float64)
	AddRootMoves(n int)
	AddNode(samples int)
	SetKingCapture()
	Complete() SearchMetric
}

type collector struct {
	maxDepth    int
	discount    float64
	startTime   time.Time
	rootMoves   atomic.Int32
	nodes       atomic.Int32
	samples     atomic.Int32
	emptyNodes  atomic.Int32
	kingCapture atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int, discount float64) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.discount = discount
	m.rootMoves.Store(0)
	m.nodes.Store(0)
	m.samples.Store(0)
	m.emptyNodes.Store(0)
	m.kingCapture.Store(false)
}

func (m *collector) AddRootMoves(n int) {
	m.rootMoves.Add(int32(n))
}

func (m *collector) AddNode(samples int) {
	m.nodes.Add(1)
	m.samples.Add(int32(samples))
	if samples == 0 {
		m.emptyNodes.Add(1)
	}
}

func (m *collector) SetKingCapture() {
	m.kingCapture.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		MaxDepth:    m.maxDepth,
		Discount:    m.discount,
		Duration:    time.Since(m.startTime),
		RootMoves:   int(m.rootMoves.Load()),
		Nodes:       int(m.nodes.Load()),
		Samples:     int(m.samples.Load()),
		EmptyNodes:  int(m.emptyNodes.Load()),
		KingCapture: m.kingCapture.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int, discount float64) {}
func (m *dummyCollector) AddRootMoves(n int)                   {}
func (m *dummyCollector) AddNode(samples int)                  {}
func (m *dummyCollector) SetKingCapture()                      {}
func (m *dummyCollector) Complete() SearchMetric               { return SearchMetric{} }
