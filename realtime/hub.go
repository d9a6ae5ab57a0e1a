// Package realtime pushes meeting lifecycle events to connected clients so
// the UI can refresh without polling. One connection per user; events for
// offline users are simply dropped; email is the durable channel.
package realtime

import (
	"log"
	"sync"

	"github.com/anjiri1684/course_mentor/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// MeetingEvent is what the notification boundary consumes: enough of the
// record to decide what to render.
type MeetingEvent struct {
	Type                  string                 `json:"type"`
	MeetingID             uuid.UUID              `json:"meeting_id"`
	Status                models.MeetingStatus   `json:"status"`
	PaymentStatus         models.PaymentStatus   `json:"payment_status"`
	MeetingLink           *string                `json:"meeting_link,omitempty"`
	RescheduleRequestedBy models.RescheduleParty `json:"reschedule_requested_by,omitempty"`
}

type targetedEvent struct {
	userID uuid.UUID
	event  MeetingEvent
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex

var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan targetedEvent, 64)

// PushMeetingEvent queues an event for the given user. Safe to call from any
// goroutine; never blocks a state transition on a slow socket.
func PushMeetingEvent(userID uuid.UUID, eventType string, meeting *models.Meeting) {
	select {
	case events <- targetedEvent{
		userID: userID,
		event: MeetingEvent{
			Type:                  eventType,
			MeetingID:             meeting.ID,
			Status:                meeting.Status,
			PaymentStatus:         meeting.PaymentStatus,
			MeetingLink:           meeting.MeetingLink,
			RescheduleRequestedBy: meeting.RescheduleRequestedBy,
		},
	}:
	default:
		log.Printf("Event queue full, dropping %s event for user %s", eventType, userID)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case te := <-events:
			clientsMu.RLock()
			conn, ok := clients[te.userID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(te.event); err != nil {
				log.Printf("Error pushing event to client %s: %v", te.userID, err)
				conn.Close()
				clientsMu.Lock()
				if c, ok := clients[te.userID]; ok && c == conn {
					delete(clients, te.userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
