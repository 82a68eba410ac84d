package kgp

import (
	"io"
)

// mockTransport is an in-memory Transport double used to drive Session
// through scripted input/output line pairs, in the spirit of the
// reference client's own test.py script.
type mockTransport struct {
	in     chan string
	out    chan []byte
	closed chan struct{}
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		in:     make(chan string, 16),
		out:    make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (m *mockTransport) ReadLine() (string, error) {
	select {
	case line, ok := <-m.in:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-m.closed:
		return "", io.EOF
	}
}

func (m *mockTransport) WriteMessage(data []byte) error {
	cp := append([]byte(nil), data...)
	select {
	case m.out <- cp:
		return nil
	case <-m.closed:
		return io.ErrClosedPipe
	}
}

func (m *mockTransport) Close() error {
	select {
	case <-m.closed:
	default:
		close(m.closed)
	}
	return nil
}

// send feeds one inbound line to the session under test.
func (m *mockTransport) send(line string) {
	select {
	case m.in <- line:
	case <-m.closed:
	}
}
