package chats

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"agrogram/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS subscribes a participant to a conversation's live feed.
func ServeWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Browsers cannot set Authorization on websocket upgrades; accept
		// the token as a query parameter instead.
		token := r.URL.Query().Get("token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		convID := ps.ByName("conversationid")
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if !isParticipant(ctx, convID, claims.UserID) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("ServeWS upgrade error:", err)
			return
		}

		client := &Client{
			Send:   make(chan []byte, 16),
			Room:   convID,
			UserID: claims.UserID,
		}
		if !hub.Register(client) {
			conn.Close()
			return
		}

		go func() {
			defer conn.Close()
			for data := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					break
				}
			}
		}()

		go func() {
			defer hub.Unregister(client)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
