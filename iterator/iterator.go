// Package iterator implements the bounded sliding-window view over an input
// byte stream that the recognition algorithm advances and rewinds.
//
// An Iterator retains every byte it has read (the conservative strategy
// spec.md §4.1 explicitly allows in place of discarding bytes behind the
// cursor), so any offset ever reached stays addressable for the lifetime of
// the iterator. What is bounded is *lookahead*, not retention: the iterator
// refills from its source until at least LookAhead bytes sit ahead of the
// cursor, against a single growable buffer instead of a queue of discrete
// sources.
package iterator

import (
	"bytes"
	"io"
	"os"

	"github.com/ava12/dynparse/errors"
)

// LookAhead is the minimum number of buffered bytes the iterator keeps ahead
// of the cursor whenever more input remains to be read.
const LookAhead = 64 * 1024

// Status describes the iterator's lifecycle stage.
type Status int

const (
	Init        Status = iota // constructed, nothing read yet
	Processing                // cursor is positioned within the buffered window
	InputEnded                // underlying source is exhausted, buffer may still hold unread bytes
	Ended                     // cursor has reached the final byte, no more to give
)

const (
	openError = errors.IteratorErrors
	readError = errors.IteratorErrors + 1
	seekError = errors.IteratorErrors + 2
)

// Iterator is a bounded sliding-window reader over a byte stream, tracking
// an absolute cursor offset and a line counter.
type Iterator struct {
	name       string
	r          io.Reader
	closer     io.Closer
	buf        []byte
	pos        int
	sourceEOF  bool
	lineSep    byte
	lineStarts []int
	status     Status
}

// Open binds an Iterator to a file on disk.
func Open(path string) (*Iterator, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, errors.FormatPos(namePos{path}, openError, "cannot open %q: %s", path, e.Error())
	}

	it := New(path, f)
	it.closer = f
	return it, nil
}

// New wraps an arbitrary reader as an Iterator. The separator byte used for
// line counting defaults to '\n'; override it with SetLineSeparator before
// the first Move call if the input uses a different convention.
func New(name string, r io.Reader) *Iterator {
	it := &Iterator{
		name:       name,
		r:          r,
		lineSep:    '\n',
		lineStarts: []int{0},
		status:     Init,
	}
	it.fill()
	return it
}

// SetLineSeparator overrides the byte used to count lines. Must be called
// before any Move/MoveTo advances the cursor past offset 0.
func (it *Iterator) SetLineSeparator(b byte) {
	it.lineSep = b
	it.lineStarts = []int{0}
	it.scanLineStarts(0, len(it.buf))
}

// Name returns the iterator's source name, used for error reporting.
func (it *Iterator) Name() string {
	return it.name
}

// Close releases the underlying source, if it is closable.
func (it *Iterator) Close() error {
	if it.closer != nil {
		return it.closer.Close()
	}
	return nil
}

// Status reports the iterator's lifecycle stage.
func (it *Iterator) Status() Status {
	return it.status
}

// HasMore reports whether any more bytes, buffered or not, remain ahead of
// the cursor.
func (it *Iterator) HasMore() bool {
	return it.pos < len(it.buf) || !it.sourceEOF
}

// Remaining reports how many bytes are currently buffered ahead of the
// cursor. It is always >= LookAhead unless the source is exhausted.
func (it *Iterator) Remaining() int {
	return len(it.buf) - it.pos
}

// Offset returns the absolute cursor position.
func (it *Iterator) Offset() int {
	return it.pos
}

// Len returns the number of bytes read from the source so far. Growing
// while the source still has input left.
func (it *Iterator) Len() int {
	return len(it.buf)
}

// Bytes returns the n bytes starting at the cursor, refilling as needed.
// The returned slice aliases the iterator's buffer and must not be retained
// past the next Move/MoveTo call.
func (it *Iterator) Bytes(n int) []byte {
	it.ensure(it.pos + n)
	end := it.pos + n
	if end > len(it.buf) {
		end = len(it.buf)
	}
	return it.buf[it.pos:end]
}

// ByteAt returns the byte at the given absolute offset and whether it was
// available, refilling as needed.
func (it *Iterator) ByteAt(offset int) (byte, bool) {
	it.ensure(offset + 1)
	if offset < 0 || offset >= len(it.buf) {
		return 0, false
	}
	return it.buf[offset], true
}

// Move advances (n > 0) or rewinds (n < 0) the cursor by n bytes, refilling
// the buffer as needed and updating the line counter by scanning the
// traversed region for the separator byte. It reports false if the move ran
// off the end of input (the cursor then sits at the final offset).
func (it *Iterator) Move(n int) bool {
	target := it.pos + n
	if target < 0 {
		target = 0
	}

	it.ensure(target)
	ok := true
	if target > len(it.buf) {
		target = len(it.buf)
		ok = false
	}

	it.setPos(target)
	return ok
}

// MoveTo performs an absolute seek. Any offset within [0, bytes read so
// far] or reachable by further refilling succeeds; an offset beyond the
// exhausted source fails and leaves the cursor at the end of input.
func (it *Iterator) MoveTo(offset int) error {
	if offset < 0 {
		offset = 0
	}

	it.ensure(offset)
	if offset > len(it.buf) {
		it.setPos(len(it.buf))
		return errors.FormatPos(namePos{it.name}, seekError, "seek past end of input at offset %d", offset)
	}

	it.setPos(offset)
	return nil
}

// LineCol converts an absolute offset into a 1-based line and column.
func (it *Iterator) LineCol(offset int) (line, col int) {
	it.ensure(offset)
	if offset < 0 {
		offset = 0
	}
	if offset > len(it.buf) {
		offset = len(it.buf)
	}

	idx := it.findLineIndex(offset)
	lineStart := it.lineStarts[idx]
	return idx + 1, offset - lineStart + 1
}

func (it *Iterator) findLineIndex(offset int) int {
	lo, hi := 0, len(it.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) >> 1
		if it.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (it *Iterator) setPos(target int) {
	it.pos = target
	if it.pos >= len(it.buf) && it.sourceEOF {
		it.status = Ended
	} else if it.sourceEOF {
		it.status = InputEnded
	} else {
		it.status = Processing
	}
}

// ensure refills the buffer until at least `through` bytes have been read
// or the source is exhausted, then tops up to LookAhead bytes past that
// point so the invariant in spec.md §4.1 holds after the caller repositions
// the cursor there.
func (it *Iterator) ensure(through int) {
	for len(it.buf) < through && !it.sourceEOF {
		it.fill()
	}
	for len(it.buf) < through+LookAhead && !it.sourceEOF {
		it.fill()
	}
}

func (it *Iterator) fill() {
	if it.sourceEOF {
		return
	}

	chunk := make([]byte, LookAhead)
	n, e := it.r.Read(chunk)
	if n > 0 {
		start := len(it.buf)
		it.buf = append(it.buf, chunk[:n]...)
		it.scanLineStarts(start, len(it.buf))
	}
	if e != nil {
		it.sourceEOF = true
	}
}

func (it *Iterator) scanLineStarts(from, to int) {
	region := it.buf[from:to]
	off := 0
	for {
		i := bytes.IndexByte(region[off:], it.lineSep)
		if i < 0 {
			break
		}
		it.lineStarts = append(it.lineStarts, from+off+i+1)
		off += i + 1
	}
}

type namePos struct{ name string }

func (p namePos) SourceName() string { return p.name }
func (p namePos) Line() int          { return 0 }
func (p namePos) Col() int           { return 0 }
