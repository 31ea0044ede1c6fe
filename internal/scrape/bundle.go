package scrape

import "sync"

// ErrorBundle collects the non-fatal problems of a run, grouped by stage.
// Messages are append-only and keep arrival order within a stage.
type ErrorBundle struct {
	mu      sync.Mutex
	stages  []string
	byStage map[string][]string
}

// NewErrorBundle creates an empty bundle.
func NewErrorBundle() *ErrorBundle {
	return &ErrorBundle{byStage: make(map[string][]string)}
}

// Add records one message under a stage.
func (b *ErrorBundle) Add(stage, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byStage[stage]; !ok {
		b.stages = append(b.stages, stage)
	}
	b.byStage[stage] = append(b.byStage[stage], message)
}

// Empty reports whether nothing has been recorded.
func (b *ErrorBundle) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byStage) == 0
}

// Len counts all recorded messages across stages.
func (b *ErrorBundle) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, msgs := range b.byStage {
		n += len(msgs)
	}
	return n
}

// Stages lists the stages in first-use order.
func (b *ErrorBundle) Stages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.stages))
	copy(out, b.stages)
	return out
}

// Messages returns the recorded messages of one stage, in arrival order.
func (b *ErrorBundle) Messages(stage string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.byStage[stage]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// ByStage returns a snapshot of the whole bundle.
func (b *ErrorBundle) ByStage() map[string][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]string, len(b.byStage))
	for stage, msgs := range b.byStage {
		copied := make([]string, len(msgs))
		copy(copied, msgs)
		out[stage] = copied
	}
	return out
}
