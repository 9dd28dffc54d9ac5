package regression

import (
	"fmt"

	"github.com/arloliu/segfit/errs"
)

// Simplify performs exactly one bottom-up simplification step: it evaluates
// the score of removing each existing breakpoint and returns a new model with
// the removal that yields the lowest BIC. The receiver is not mutated.
//
// It fails with ErrNoBreakpoints when the model has no breakpoints.
func (m *Model) Simplify() (*Model, error) {
	if len(m.segs) < 2 {
		return nil, errs.ErrNoBreakpoints
	}

	var best *Model
	for j := 1; j < len(m.segs); j++ {
		merged, err := m.mergeSegments(j-1, j)
		if err != nil {
			continue // failing candidates are excluded, not fatal
		}

		segs := make([]Segment, 0, len(m.segs)-1)
		segs = append(segs, m.segs[:j-1]...)
		segs = append(segs, merged)
		segs = append(segs, m.segs[j+1:]...)

		cand := m.withSegments(segs)
		// Ties keep the leftmost removal.
		if best == nil || cand.score.BIC < best.score.BIC-bicTol {
			best = cand
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no viable breakpoint removal", errs.ErrDegenerateSegment)
	}

	return best, nil
}

// AutoSimplify walks the full bottom-up simplification trajectory, removing
// one breakpoint at a time down to zero, and returns the model at the step
// with the globally best BIC. Ties prefer fewer breakpoints; a model that is
// already optimal is returned unchanged. The receiver is not mutated.
func (m *Model) AutoSimplify() *Model {
	best := m
	cur := m
	for len(cur.segs) > 1 {
		next, err := cur.Simplify()
		if err != nil {
			break
		}
		cur = next

		if cur.score.BIC <= best.score.BIC+bicTol {
			best = cur
		}
	}

	return best
}
