// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrHubClosed   = errors.New("websocket hub is not running")
	ErrClientSlow  = errors.New("client send buffer is full")
	ErrUnsubscribe = errors.New("unknown channel")
)
