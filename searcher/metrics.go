package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Queries   int64
	Rollouts  int64
	MaxDepth  int64
}

type MetricsCollector interface {
	Start()
	AddQuery()
	AddRollout()
	ObserveDepth(depth int)
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime time.Time
	queries   atomic.Int64
	rollouts  atomic.Int64
	maxDepth  atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.queries.Store(0)
	m.rollouts.Store(0)
	m.maxDepth.Store(0)
}

func (m *metricsCollector) AddQuery() {
	m.queries.Add(1)
}

func (m *metricsCollector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *metricsCollector) ObserveDepth(depth int) {
	for {
		current := m.maxDepth.Load()
		if int64(depth) <= current {
			return
		}
		if m.maxDepth.CompareAndSwap(current, int64(depth)) {
			return
		}
	}
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Queries:   m.queries.Load(),
		Rollouts:  m.rollouts.Load(),
		MaxDepth:  m.maxDepth.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddQuery()               {}
func (m *noMetricsCollector) AddRollout()             {}
func (m *noMetricsCollector) ObserveDepth(depth int)  {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
