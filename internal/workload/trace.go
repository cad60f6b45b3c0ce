package workload

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var ErrBadTrace = errors.New("malformed trace")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var fieldNames = [3]string{"dst", "src", "pos"}

// Trace format: one op per line, "kind dst src pos val". Blank lines and
// lines starting with '#' are ignored. The stream may be zstd compressed.

func WriteTrace(w io.Writer, ops []Op, compress bool) error {
	if !compress {
		return writeOps(w, ops)
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	if err := writeOps(enc, ops); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeOps(w io.Writer, ops []Op) error {
	bw := bufio.NewWriter(w)
	for _, op := range ops {
		if _, err := fmt.Fprintf(bw, "%s %d %d %d %d\n", op.Kind, op.Dst, op.Src, op.Pos, op.Val); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTrace parses a trace, detecting zstd compression from the frame magic.
func ReadTrace(r io.Reader) ([]Op, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if head, _ := br.Peek(len(zstdMagic)); bytes.Equal(head, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		src = dec
	}

	var ops []Op
	sc := bufio.NewScanner(src)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		op, err := parseOp(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadTrace, line, err)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func parseOp(text string) (Op, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return Op{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}
	k, err := ParseKind(fields[0])
	if err != nil {
		return Op{}, err
	}
	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return Op{}, err
		}
		if n < 0 {
			return Op{}, fmt.Errorf("negative %s %d", fieldNames[i], n)
		}
		nums[i] = n
	}
	val, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Op{}, err
	}
	return Op{Kind: k, Dst: nums[0], Src: nums[1], Pos: nums[2], Val: val}, nil
}

// SaveTrace writes ops to path.
func SaveTrace(path string, ops []Op, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace (%s): %w", path, err)
	}
	if err := WriteTrace(f, ops, compress); err != nil {
		f.Close()
		return fmt.Errorf("write trace (%s): %w", path, err)
	}
	return f.Close()
}

// LoadTrace reads ops from path.
func LoadTrace(path string) ([]Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace (%s): %w", path, err)
	}
	defer f.Close()
	return ReadTrace(f)
}
