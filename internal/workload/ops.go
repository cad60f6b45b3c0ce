package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

var ErrUnknownOp = errors.New("unknown op")

// Kind names one container operation.
type Kind uint8

const (
	OpPush Kind = iota
	OpPop
	OpInsert
	OpErase
	OpSet
	OpClone
	OpRelease
	OpReserve
	OpShrink
	OpSwap
	OpClear
	numKinds
)

var kindNames = [numKinds]string{
	OpPush:    "push",
	OpPop:     "pop",
	OpInsert:  "insert",
	OpErase:   "erase",
	OpSet:     "set",
	OpClone:   "clone",
	OpRelease: "release",
	OpReserve: "reserve",
	OpShrink:  "shrink",
	OpSwap:    "swap",
	OpClear:   "clear",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("op(%d)", uint8(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Op is one step of a workload. Dst is the pool slot operated on, Src the
// second slot for clone and swap. Pos is reduced modulo the target length
// when applied, so a trace stays valid whatever state it runs against.
type Op struct {
	Kind Kind
	Dst  int
	Src  int
	Pos  int
	Val  int64
}

// Generate produces cfg.Ops operations, deterministic for a given cfg.
func Generate(cfg Config) []Op {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	// sort names so map iteration order does not leak into the stream
	names := make([]string, 0, len(cfg.Mix))
	for name := range cfg.Mix {
		names = append(names, name)
	}
	slices.Sort(names)
	var (
		kinds   []Kind
		weights []int
		total   int
	)
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil || cfg.Mix[name] <= 0 {
			continue
		}
		kinds = append(kinds, k)
		total += cfg.Mix[name]
		weights = append(weights, total)
	}
	if total == 0 {
		return nil
	}

	ops := make([]Op, cfg.Ops)
	for i := range ops {
		pick := rng.IntN(total)
		k, _ := slices.BinarySearch(weights, pick+1)
		ops[i] = Op{
			Kind: kinds[k],
			Dst:  rng.IntN(cfg.Pool),
			Src:  rng.IntN(cfg.Pool),
			Pos:  rng.IntN(1 << 16),
			Val:  rng.Int64N(2*cfg.MaxValue+1) - cfg.MaxValue,
		}
	}
	return ops
}
