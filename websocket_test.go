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

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSocket struct {
	written [][]byte
	closed  bool
}

func (s *fakeSocket) WriteMessage(data []byte, binary bool) error {
	s.written = append(s.written, data)
	return nil
}

func (s *fakeSocket) Close() error {
	s.closed = true
	return nil
}

func TestWebSocketPlainRequestNotFound(t *testing.T) {
	rt := New()
	rt.WebSocket("/ws", WebSocketHandlers{})

	resp := do(rt, MethodGet, "/ws")
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestWebSocketUpgradeInvokesOnOpen(t *testing.T) {
	var opened *WSConn
	rt := New()
	rt.WebSocket("/ws", WebSocketHandlers{
		OnOpen: func(conn *WSConn) { opened = conn },
	})

	sock := &fakeSocket{}
	resp := rt.HandleUpgrade(&Request{Method: MethodGet, Path: "/ws", Header: make(http.Header)}, sock)
	require.NotEqual(t, http.StatusInternalServerError, resp.Status)
	require.NotNil(t, opened)

	require.NoError(t, opened.Send([]byte("hi"), false))
	assert.Equal(t, [][]byte{[]byte("hi")}, sock.written)
}

// Scenario 12: OnAccept returning false refuses the upgrade and OnOpen
// is never called.
func TestWebSocketOnAcceptRefusal(t *testing.T) {
	opened := false
	rt := New()
	rt.WebSocket("/ws", WebSocketHandlers{
		OnAccept: func(req *Request) bool { return false },
		OnOpen:   func(conn *WSConn) { opened = true },
	})

	sock := &fakeSocket{}
	resp := rt.HandleUpgrade(&Request{Method: MethodGet, Path: "/ws", Header: make(http.Header)}, sock)
	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.False(t, opened)
}

func TestWebSocketFeedDeliversToOnMessage(t *testing.T) {
	var received []byte
	rt := New()
	rt.WebSocket("/ws", WebSocketHandlers{
		OnMessage: func(conn *WSConn, payload []byte, isBinary bool) { received = payload },
	})

	var opened *WSConn
	rt.WebSocket("/ws2", WebSocketHandlers{OnOpen: func(conn *WSConn) { opened = conn }})
	rt.HandleUpgrade(&Request{Method: MethodGet, Path: "/ws2", Header: make(http.Header)}, &fakeSocket{})
	opened.handlers.OnMessage = func(conn *WSConn, payload []byte, isBinary bool) { received = payload }
	opened.Feed([]byte("frame"), false)

	assert.Equal(t, []byte("frame"), received)
}
