// internal/matrixio/open.go
package matrixio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiCloser closes every closer, reporting the first error.
type multiCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenInput opens path for reading. "-" is stdin; gzip is detected by magic
// number or .gz suffix.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

type flushCloser struct {
	*bufio.Writer
	next io.Closer
}

func (f flushCloser) Close() error {
	if err := f.Flush(); err != nil {
		_ = f.next.Close()
		return err
	}
	return f.next.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// CreateOutput opens path for buffered writing. "-" is stdout; a .gz suffix
// gzips. Close flushes.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return flushCloser{Writer: bufio.NewWriter(os.Stdout), next: nopCloser{}}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gw := gzip.NewWriter(fh)
		mc := &multiCloser{Writer: gw, closers: []io.Closer{gw, fh}}
		return flushCloser{Writer: bufio.NewWriter(gw), next: mc}, nil
	}
	return flushCloser{Writer: bufio.NewWriter(fh), next: fh}, nil
}
