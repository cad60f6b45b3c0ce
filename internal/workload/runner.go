package workload

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/rawbytedev/socow"
)

var ErrDivergence = errors.New("vector diverged from model")

type vector = socow.Vector[int64, [4]int64]

// Report summarizes a run.
type Report struct {
	Ops        int
	PerKind    map[string]int
	Skipped    int // ops that were no-ops for the state they met (pop on empty...)
	Promotions int // inline -> heap transitions caused by growth
	Unshares   int // writes that detached a vector from a buffer it shared
	PeakCap    int
}

func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Int("ops", r.Ops).
		Int("skipped", r.Skipped).
		Int("promotions", r.Promotions).
		Int("unshares", r.Unshares).
		Int("peak_cap", r.PeakCap)
	for _, name := range kindNames {
		e.Int(name, r.PerKind[name])
	}
}

// Runner applies ops to a pool of vectors and to plain slices holding the
// expected contents, checking them against each other after every op.
type Runner struct {
	vecs  []*vector
	model [][]int64
	log   zerolog.Logger
}

func NewRunner(pool int, logger zerolog.Logger) *Runner {
	r := &Runner{
		vecs:  make([]*vector, pool),
		model: make([][]int64, pool),
		log:   logger,
	}
	for i := range r.vecs {
		r.vecs[i] = socow.New[int64, [4]int64]()
	}
	return r
}

// Run executes ops on a fresh pool of the given size.
func Run(ops []Op, pool int, logger zerolog.Logger) (Report, error) {
	r := NewRunner(pool, logger)
	defer r.Close()
	return r.Run(ops)
}

func (r *Runner) Run(ops []Op) (Report, error) {
	rep := Report{PerKind: make(map[string]int)}
	for i, op := range ops {
		if op.Dst < 0 || op.Dst >= len(r.vecs) || op.Src < 0 || op.Src >= len(r.vecs) {
			return rep, fmt.Errorf("op %d (%s): slot out of pool range %d", i, op.Kind, len(r.vecs))
		}
		v := r.vecs[op.Dst]
		wasSmall := v.IsSmall()
		sharer := r.sharerOf(op.Dst)

		applied, err := r.apply(op)
		if err != nil {
			return rep, fmt.Errorf("op %d (%s): %w", i, op.Kind, err)
		}
		rep.Ops++
		rep.PerKind[op.Kind.String()]++
		if !applied {
			rep.Skipped++
		}
		if wasSmall && writes(op.Kind) && !v.IsSmall() {
			rep.Promotions++
		}
		if sharer >= 0 && applied && writes(op.Kind) && !v.Aliases(r.vecs[sharer]) {
			rep.Unshares++
		}
		if c := v.Cap(); c > rep.PeakCap {
			rep.PeakCap = c
		}
		if err := r.check(); err != nil {
			r.log.Error().Err(err).Int("op", i).Str("kind", op.Kind.String()).Msg("check failed")
			return rep, fmt.Errorf("op %d (%s): %w", i, op.Kind, err)
		}
		if r.log.GetLevel() <= zerolog.TraceLevel {
			r.log.Trace().Int("op", i).Str("kind", op.Kind.String()).
				Int("dst", op.Dst).Int("len", v.Len()).Int("cap", v.Cap()).
				Int("refs", v.RefCount()).Msg("applied")
		}
	}
	return rep, nil
}

// Close releases every vector of the pool.
func (r *Runner) Close() {
	for _, v := range r.vecs {
		v.Release()
	}
}

func writes(k Kind) bool {
	switch k {
	case OpPush, OpPop, OpInsert, OpErase, OpSet, OpReserve, OpShrink:
		return true
	}
	return false
}

func (r *Runner) sharerOf(i int) int {
	for j, o := range r.vecs {
		if j != i && r.vecs[i].Aliases(o) {
			return j
		}
	}
	return -1
}

// apply runs op on both the vector and its model. It reports false when the
// op had nothing to act on.
func (r *Runner) apply(op Op) (bool, error) {
	v, want := r.vecs[op.Dst], r.model[op.Dst]
	switch op.Kind {
	case OpPush:
		if err := v.PushBack(op.Val); err != nil {
			return false, err
		}
		r.model[op.Dst] = append(want, op.Val)
	case OpPop:
		if len(want) == 0 {
			return false, nil
		}
		if err := v.PopBack(); err != nil {
			return false, err
		}
		r.model[op.Dst] = want[:len(want)-1]
	case OpInsert:
		pos := op.Pos % (len(want) + 1)
		if err := v.Insert(pos, op.Val); err != nil {
			return false, err
		}
		r.model[op.Dst] = slices.Insert(want, pos, op.Val)
	case OpErase:
		if len(want) == 0 {
			return false, nil
		}
		pos := op.Pos % len(want)
		if err := v.Erase(pos); err != nil {
			return false, err
		}
		r.model[op.Dst] = slices.Delete(want, pos, pos+1)
	case OpSet:
		if len(want) == 0 {
			return false, nil
		}
		pos := op.Pos % len(want)
		if err := v.Set(pos, op.Val); err != nil {
			return false, err
		}
		want[pos] = op.Val
	case OpClone:
		if op.Dst == op.Src {
			return false, nil
		}
		if err := v.CopyFrom(r.vecs[op.Src]); err != nil {
			return false, err
		}
		r.model[op.Dst] = slices.Clone(r.model[op.Src])
	case OpRelease:
		v.Release()
		r.model[op.Dst] = nil
	case OpReserve:
		if err := v.Reserve(op.Pos % 64); err != nil {
			return false, err
		}
	case OpShrink:
		if err := v.ShrinkToFit(); err != nil {
			return false, err
		}
	case OpSwap:
		if op.Dst == op.Src {
			return false, nil
		}
		v.Swap(r.vecs[op.Src])
		r.model[op.Dst], r.model[op.Src] = r.model[op.Src], want
	case OpClear:
		v.Clear()
		r.model[op.Dst] = want[:0]
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownOp, op.Kind)
	}
	return true, nil
}

func (r *Runner) check() error {
	for i, v := range r.vecs {
		if v.Len() > v.Cap() {
			return fmt.Errorf("%w: slot %d len %d > cap %d", ErrDivergence, i, v.Len(), v.Cap())
		}
		want := r.model[i]
		if v.Len() != len(want) {
			return fmt.Errorf("%w: slot %d len %d, want %d", ErrDivergence, i, v.Len(), len(want))
		}
		for k, x := range v.All() {
			if x != want[k] {
				return fmt.Errorf("%w: slot %d index %d = %d, want %d", ErrDivergence, i, k, x, want[k])
			}
		}
		if v.IsSmall() {
			continue
		}
		aliases := 0
		for _, o := range r.vecs {
			if v.Aliases(o) {
				aliases++
			}
		}
		if aliases != v.RefCount() {
			return fmt.Errorf("%w: slot %d refcount %d, %d vectors alias its buffer", ErrDivergence, i, v.RefCount(), aliases)
		}
	}
	return nil
}
