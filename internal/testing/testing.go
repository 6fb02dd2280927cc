// package testing contains test doubles shared by the songrec packages
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
)

// ErrInjected is returned by the failing doubles in this package.
var ErrInjected = errors.New("injected failure")

// FWriter fails every Write.
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, ErrInjected
}

// LimitedWriter forwards to target until maxWrites writes have been made, then fails.
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, ErrInjected
	}
	l.written++
	return l.target.Write(p)
}

// NewLimitedWriter creates a [LimitedWriter] that has already made written writes.
func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper answers every request with a fixed response or error, so client code
// can be tested without a server.
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser is a response body whose Read always fails.
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, ErrInjected
}

func (f *FCloser) Close() error { return nil }

// AssertFileExists fails the test when path is missing.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s: %v", path, err)
	}
}

// AssertDirExists fails the test when path is missing or is not a directory.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	switch {
	case err != nil:
		t.Errorf("expected directory %s: %v", path, err)
	case !info.IsDir():
		t.Errorf("expected %s to be a directory", path)
	}
}

// MustReadFile returns the contents of path, stopping the test when it cannot be read.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}
