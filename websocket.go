// Copyright 2025 The Lattice Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

// Socket is the minimal surface the routing core needs from an upgraded
// connection: the ability to write frames and close. The WebSocket frame
// protocol itself — masking, opcodes, fragmentation, ping/pong — is an
// external collaborator, per scope; this package only hands the socket
// off to the matched rule's callbacks.
type Socket interface {
	WriteMessage(data []byte, binary bool) error
	Close() error
}

// WebSocketHandlers holds the five optional callbacks a WebSocket rule
// may register. All are optional; a nil callback is simply never
// called.
type WebSocketHandlers struct {
	// OnAccept decides whether to complete the upgrade at all, given the
	// pre-upgrade request. A nil OnAccept accepts unconditionally.
	OnAccept func(req *Request) bool

	OnOpen    func(conn *WSConn)
	OnMessage func(conn *WSConn, payload []byte, isBinary bool)
	OnClose   func(conn *WSConn, reason string)
	OnError   func(conn *WSConn, err error)
}

// WSConn is the connection object handed to a WebSocket rule's
// callbacks. It owns the underlying Socket once the upgrade completes;
// driving payloads into OnMessage as they're decoded is the caller's
// responsibility (via Feed) — this is the seam where a real frame
// codec attaches, outside this core's scope.
type WSConn struct {
	socket   Socket
	handlers WebSocketHandlers
}

func newWSConn(socket Socket, handlers WebSocketHandlers) *WSConn {
	return &WSConn{socket: socket, handlers: handlers}
}

// Send writes a message to the peer.
func (c *WSConn) Send(data []byte, binary bool) error {
	return c.socket.WriteMessage(data, binary)
}

// Close closes the underlying socket and, if set, invokes OnClose with
// reason.
func (c *WSConn) Close(reason string) error {
	err := c.socket.Close()
	if c.handlers.OnClose != nil {
		c.handlers.OnClose(c, reason)
	}
	return err
}

// Feed delivers one decoded frame payload to OnMessage. Called by
// whatever owns the connection's read loop once a frame has been
// decoded off the wire; this core never reads from the socket itself.
func (c *WSConn) Feed(payload []byte, isBinary bool) {
	if c.handlers.OnMessage != nil {
		c.handlers.OnMessage(c, payload, isBinary)
	}
}

// ReportError invokes OnError, if set.
func (c *WSConn) ReportError(err error) {
	if c.handlers.OnError != nil {
		c.handlers.OnError(c, err)
	}
}
