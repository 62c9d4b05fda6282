package telemetry

import (
	"context"
	"sync/atomic"
	"time"
)

// AdvanceMetrics fasst Messwerte zu Scheduler-Advances zusammen.
type AdvanceMetrics struct {
	totalDuration atomic.Int64
	advances      atomic.Uint64
	rejections    atomic.Uint64
}

var defaultAdvanceMetrics AdvanceMetrics

// DefaultAdvanceMetrics liefert die globalen Metriken.
func DefaultAdvanceMetrics() *AdvanceMetrics {
	return &defaultAdvanceMetrics
}

// TraceAdvance startet ein Advance-Span und liefert eine Abschlussfunktion,
// die Dauer und Fehlerzustand meldet.
func TraceAdvance(ctx context.Context) (context.Context, func(error)) {
	start := time.Now()
	defaultAdvanceMetrics.advances.Add(1)
	return ctx, func(err error) {
		elapsed := time.Since(start)
		defaultAdvanceMetrics.totalDuration.Add(elapsed.Nanoseconds())
		if err != nil {
			defaultAdvanceMetrics.rejections.Add(1)
		}
	}
}

// Snapshot gibt die gesammelten Werte zurück.
func (m *AdvanceMetrics) Snapshot() (advances uint64, rejections uint64, average time.Duration) {
	advances = m.advances.Load()
	rejections = m.rejections.Load()
	total := m.totalDuration.Load()
	if advances == 0 {
		return advances, rejections, 0
	}
	average = time.Duration(total / int64(advances))
	return advances, rejections, average
}

// Reset setzt alle Zähler zurück.
func (m *AdvanceMetrics) Reset() {
	m.totalDuration.Store(0)
	m.advances.Store(0)
	m.rejections.Store(0)
}
