package geodb

import (
	"fmt"
	"net"
	"sync"
)

// MockReader is a test double for Reader.
// Records are keyed by the IP's string form.
type MockReader struct {
	mu sync.Mutex

	Data map[string]map[string]any

	// Track method calls for verification in tests
	LookupCalls []string
	CloseCalled bool

	// Control behavior for error scenarios
	LookupError error
}

// NewMockReader creates a reader serving data
func NewMockReader(data map[string]map[string]any) *MockReader {
	if data == nil {
		data = map[string]map[string]any{}
	}
	return &MockReader{Data: data}
}

// Lookup implements Reader
func (m *MockReader) Lookup(ip net.IP) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LookupCalls = append(m.LookupCalls, ip.String())
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.Data[ip.String()], nil
}

// Close implements Reader
func (m *MockReader) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalled = true
	return nil
}

// MockOpener serves preconfigured readers by path and counts open calls
type MockOpener struct {
	mu sync.Mutex

	Readers map[string]Reader
	Errors  map[string]error
	Calls   map[string]int

	// Before runs at the start of every Open, e.g. to hold the opener on a barrier
	Before func(path string)
}

// NewMockOpener creates an opener serving readers by path
func NewMockOpener(readers map[string]Reader) *MockOpener {
	return &MockOpener{
		Readers: readers,
		Errors:  map[string]error{},
		Calls:   map[string]int{},
	}
}

// Open matches the Opener signature
func (o *MockOpener) Open(path string) (Reader, error) {
	if o.Before != nil {
		o.Before(path)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.Calls[path]++
	if err, ok := o.Errors[path]; ok {
		return nil, err
	}
	reader, ok := o.Readers[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file or directory", path)
	}
	return reader, nil
}

// CallCount returns how many times path was opened
func (o *MockOpener) CallCount(path string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Calls[path]
}
