package hmm

import (
	"math"

	"github.com/unixpickle/essentials"
)

// checkpointFloor is the minimum checkpoint stride. It keeps
// replay bookkeeping from dominating on short inputs.
const checkpointFloor = 10000

// A BackCache produces the backward variables of an observation
// sequence in increasing-time order (beta for time 0 first)
// while keeping only about stride + T/stride vectors live, where
// the stride is ceil(sqrt(T)) but never below checkpointFloor.
//
// The full backward recurrence runs once at construction. The
// earliest stride-sized window of beta vectors is retained in
// full; later windows collapse to one checkpoint vector each,
// replayed on demand as consumption reaches them. The
// observations are traversed at most twice in total, against
// once for the O(N*T)-memory full pass and T times for the
// memoryless one.
type BackCache struct {
	model *Model
	obs   Seq

	stride int

	// active holds ready-to-hand-out vectors, earliest time
	// first. passive holds one checkpoint per pending window,
	// earliest window first.
	active  [][]float64
	passive []checkpoint
}

// A checkpoint snapshots the backward variables at time mark.
// Replaying it regenerates its window of count vectors, times
// mark-count+1 through mark.
type checkpoint struct {
	beta  []float64
	mark  int
	count int
}

// NewBackCache runs the initial backward sweep over obs and
// returns the cache. The model and observations are retained by
// reference and must not change for the cache's lifetime.
//
// The cache is empty when obs holds fewer than two
// observations.
func NewBackCache(m *Model, obs Seq) *BackCache {
	stride := essentials.MaxInt(checkpointFloor,
		int(math.Ceil(math.Sqrt(float64(obs.Len())))))
	return newBackCacheStride(m, obs, stride)
}

// newBackCacheStride is NewBackCache with the checkpoint stride
// pinned, which lets tests drive the replay machinery without
// hundred-thousand-step sequences.
func newBackCacheStride(m *Model, obs Seq, stride int) *BackCache {
	c := &BackCache{model: m, obs: obs, stride: stride}
	c.initialSweep()
	return c
}

// Next hands out the next beta vector in increasing-time order,
// starting with time 0, or nil once all obs.Len() vectors have
// been produced. Ownership of the returned buffer transfers to
// the caller.
func (c *BackCache) Next() []float64 {
	if len(c.active) == 0 {
		c.replay()
		if len(c.active) == 0 {
			return nil
		}
	}
	res := c.active[0]
	c.active[0] = nil
	c.active = c.active[1:]
	return res
}

// Size reports how many entries remain across the active and
// passive lists. A passive checkpoint counts as one entry even
// though it replays into a whole window.
func (c *BackCache) Size() int {
	return len(c.active) + len(c.passive)
}

// Clone deep-copies the cache. The copy shares the model and
// observations but owns its buffers and advances independently
// of the original.
func (c *BackCache) Clone() *BackCache {
	res := &BackCache{model: c.model, obs: c.obs, stride: c.stride}
	res.active = make([][]float64, len(c.active))
	for i, b := range c.active {
		res.active[i] = append([]float64{}, b...)
	}
	res.passive = make([]checkpoint, len(c.passive))
	for i, cp := range c.passive {
		res.passive[i] = checkpoint{
			beta:  append([]float64{}, cp.beta...),
			mark:  cp.mark,
			count: cp.count,
		}
	}
	return res
}

// initialSweep runs the backward recurrence from the end of the
// observations down to time 0, retaining the window [0, stride)
// in the active list and snapshotting the top of every later
// window into the passive list. Window widths partition the
// whole time range, so exactly obs.Len() vectors get produced
// overall.
func (c *BackCache) initialSweep() {
	t := c.obs.Len()
	if t < 2 || c.stride <= 1 {
		return
	}
	window := essentials.MinInt(c.stride, t)

	beta := make([]float64, c.model.NumStates()) // log 1: beta at time t-1
	for i := t - 1; i > 0; i-- {
		if i < window {
			c.active = append(c.active, append([]float64{}, beta...))
		} else if i == t-1 || (i-window+1)%c.stride == 0 {
			c.passive = append([]checkpoint{{
				beta: append([]float64{}, beta...),
				mark: i,
			}}, c.passive...)
		}
		BackwardNext(c.model, c.obs, i, beta)
	}
	c.active = append(c.active, beta)
	reverseBufs(c.active)

	for k := range c.passive {
		if k == 0 {
			c.passive[k].count = c.passive[k].mark - window + 1
		} else {
			c.passive[k].count = c.passive[k].mark - c.passive[k-1].mark
		}
	}
}

// replay pops the earliest pending checkpoint and regenerates
// its window into the active list, earliest time first.
func (c *BackCache) replay() {
	if len(c.passive) == 0 {
		return
	}
	cp := c.passive[0]
	c.passive[0] = checkpoint{}
	c.passive = c.passive[1:]

	out := make([][]float64, cp.count)
	out[cp.count-1] = cp.beta
	beta := append([]float64{}, cp.beta...)
	for k := 1; k < cp.count; k++ {
		BackwardNext(c.model, c.obs, cp.mark-k+1, beta)
		out[cp.count-1-k] = append([]float64{}, beta...)
	}
	c.active = out
}

func reverseBufs(bufs [][]float64) {
	for i, j := 0, len(bufs)-1; i < j; i, j = i+1, j-1 {
		bufs[i], bufs[j] = bufs[j], bufs[i]
	}
}
