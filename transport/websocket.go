package transport

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocket is a Transport backed by a gorilla/websocket connection.
// Each KGP line is sent as its own text frame; no line terminator is
// added, since frame boundaries already mark the message boundary.
type WebSocket struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// DialWebSocket connects to a ws:// or wss:// URL and returns a
// ready-to-use WebSocket transport.
func DialWebSocket(url string) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return NewWebSocket(conn), nil
}

// NewWebSocket wraps an already-established connection, e.g. one
// accepted server-side via websocket.Upgrader.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{conn: conn}
}

// ReadLine blocks for the next text frame and returns its payload.
// Frames of any other type are skipped; callers only ever see text.
func (w *WebSocket) ReadLine() (string, error) {
	for {
		kind, data, err := w.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if kind != websocket.TextMessage {
			continue
		}
		return string(data), nil
	}
}

// WriteMessage sends data as a single text frame.
func (w *WebSocket) WriteMessage(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return websocket.ErrCloseSent
	}
	return w.conn.WriteMessage(websocket.TextMessage, data)
}

func (w *WebSocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	_ = w.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return w.conn.Close()
}
