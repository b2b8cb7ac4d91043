package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/protocol"
)

// handleWebSocket upgrades the connection and answers every text message with
// one ack or error frame until the peer goes away.
func (rt *routes) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := rt.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rt.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(rt.config.MaxMessageSize)
	logger := rt.logger.With("remote_addr", r.RemoteAddr)
	logger.Debug("websocket connected")

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "error", err)
			}
			return
		}

		var frame []byte
		if msgType != websocket.TextMessage {
			frame = protocol.EncodeError(diag.CodeMalformedCommand, "command envelopes must be text messages")
		} else {
			frame, _ = rt.process(r, data)
		}

		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}
	}
}
