package sheetdiff

import (
	"slices"
	"sync"

	"github.com/agentstation/sheetdiff/pkg/align"
	"github.com/agentstation/sheetdiff/pkg/reconcile"
	"github.com/agentstation/sheetdiff/pkg/report"
)

// Hook function types for comparison events
type (
	// GapHook is called for each scanned block row whose verdict is not a match
	GapHook func(row report.Row, block report.BlockRow)

	// ExcludedHook is called for each record without an identifier
	ExcludedHook func(excluded align.Excluded)
)

// hooks manages event callbacks for comparisons
type hooks struct {
	mu         sync.RWMutex
	onGap      []GapHook
	onExcluded []ExcludedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnGap registers a callback for non-matching block rows
func (h *hooks) OnGap(fn GapHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onGap = append(h.onGap, fn)
}

// OnExcluded registers a callback for excluded records
func (h *hooks) OnExcluded(fn ExcludedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onExcluded = append(h.onExcluded, fn)
}

// trigger walks a result in row order and calls the registered hooks.
// Hooks run without the lock held, so a hook may register further hooks;
// those take effect from the next comparison.
func (h *hooks) trigger(result *reconcile.Result) {
	h.mu.RLock()
	onExcluded := slices.Clone(h.onExcluded)
	onGap := slices.Clone(h.onGap)
	h.mu.RUnlock()

	for _, ex := range result.Alignment.Excluded {
		for _, fn := range onExcluded {
			fn(ex)
		}
	}

	if len(onGap) == 0 {
		return
	}
	for _, row := range result.Rows {
		for _, b := range row.Blocks {
			if !b.Verdict.Differs() {
				continue
			}
			for _, fn := range onGap {
				fn(row, b)
			}
		}
	}
}
