package main

import (
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

// Event mirrors the server's wire envelope.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// send formats and sends an event to the WebSocket server.
func send(c *websocket.Conn, event string, data interface{}) error {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		raw = b
	}

	payload, err := json.Marshal(Event{Name: event, Data: raw})
	if err != nil {
		return err
	}

	return c.WriteMessage(websocket.TextMessage, payload)
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})
	var roomCode string

	// Read loop: host a room, initialize a board, open the corner cell.
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}

			var event Event
			if err := json.Unmarshal(message, &event); err != nil {
				log.Printf("Received invalid event: %s", message)
				continue
			}
			log.Printf("<- %s %s", event.Name, event.Data)

			switch event.Name {
			case "room-created":
				var created struct {
					RoomCode string `json:"roomCode"`
				}
				if err := json.Unmarshal(event.Data, &created); err != nil {
					continue
				}
				roomCode = created.RoomCode
				log.Printf("Hosting room %s, share the code with a friend", roomCode)

				send(c, "init-game", map[string]interface{}{
					"roomCode": roomCode,
					"width":    8,
					"height":   8,
					"mines":    10,
				})
			case "game-initialized":
				send(c, "reveal-cell", map[string]interface{}{
					"roomCode": roomCode,
					"row":      0,
					"col":      0,
				})
			}
		}
	}()

	if err := send(c, "host-game", nil); err != nil {
		log.Fatalf("Failed to host game: %v", err)
	}

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupted, closing connection")
			err := c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Close error:", err)
				return
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}
