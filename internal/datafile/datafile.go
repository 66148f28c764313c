// Package datafile opens the text files an unfolding run produces and
// creates result files, handling gzip compression and output locking.
package datafile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/klauspost/pgzip"
)

const maxLineSize = 64 << 20

var gzipMagic = []byte{0x1f, 0x8b}

// DefaultLockTimeout bounds how long Create waits for another writer.
const DefaultLockTimeout = 5 * time.Second

// NewScanner returns a line scanner sized for very wide weight tables.
func NewScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading. Content starting with the gzip magic bytes is
// decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		_ = f.Close()
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if !bytes.Equal(head, gzipMagic) {
		return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
	}

	zr, err := pgzip.NewReader(br)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cannot decompress %s: %w", path, err)
	}
	// zr must be closed before f.
	return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
}

// Output is a result file held under an advisory lock until Close.
type Output struct {
	path string
	f    *os.File
	zw   *pgzip.Writer
	bw   *bufio.Writer
	lock *flock.Flock
}

// Create truncates (or creates) path for writing. A sibling "<path>.lock"
// file serialises concurrent writers; Create gives up after timeout. Paths
// ending in ".gz" are written gzip-compressed.
func Create(path string, timeout time.Duration) (*Output, error) {
	lock, err := acquireLock(path+".lock", timeout)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("cannot create %s: %w", path, err)
	}

	o := &Output{path: path, f: f, lock: lock}
	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		o.zw = pgzip.NewWriter(f)
		w = o.zw
	}
	o.bw = bufio.NewWriter(w)
	return o, nil
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	return o.bw.Write(p)
}

// Path returns the file path passed to Create.
func (o *Output) Path() string {
	return o.path
}

// Close flushes buffered data, closes the file and releases the lock.
func (o *Output) Close() error {
	defer releaseLock(o.lock)

	err := o.bw.Flush()
	if o.zw != nil {
		if cerr := o.zw.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := o.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", o.path, err)
	}
	return nil
}

// acquireLock polls for an exclusive lock on lockPath until timeout.
func acquireLock(lockPath string, timeout time.Duration) (*flock.Flock, error) {
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire output lock: %w", err)
		}
		if locked {
			return l, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another run is writing the same output (lock: %s)", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func releaseLock(l *flock.Flock) {
	_ = os.Remove(l.Path())
	_ = l.Unlock()
}
