package mqtt

import (
	"fmt"
	"sync"

	"github.com/packlab/packsim/core/telemetry"
)

// MockPublisher records published summaries for tests.
type MockPublisher struct {
	mu        sync.Mutex
	Summaries []telemetry.CellSummary
	FailAll   bool
	Closed    bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishCellSummary records the summary or fails if configured to.
func (m *MockPublisher) PublishCellSummary(s telemetry.CellSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return fmt.Errorf("publish failed")
	}
	m.Summaries = append(m.Summaries, s)
	return nil
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Published returns a copy of the recorded summaries.
func (m *MockPublisher) Published() []telemetry.CellSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]telemetry.CellSummary, len(m.Summaries))
	copy(out, m.Summaries)
	return out
}
