package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"

	"github.com/gorilla/websocket"
)

// authWindow is how long a fresh connection has to present its token.
const authWindow = 5 * time.Second

var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type ClientList map[*Client]bool

type Dispatcher struct {
	clients ClientList
	sync.RWMutex
	log      mylogger.Logger
	handlers map[string]EventHandle
	eh       EventHandler
}

func NewDispatcher(log mylogger.Logger, eh EventHandler) *Dispatcher {
	return &Dispatcher{
		clients:  make(ClientList),
		log:      log,
		handlers: make(map[string]EventHandle),
		eh:       eh,
	}
}

func (d *Dispatcher) InitHandler() {
	d.handlers[websocketdto.EventAuth] = d.eh.AuthHandler
}

func (d *Dispatcher) WsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.log.Action("wsHandler")
		userID := r.PathValue("user_id")

		if userID == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		conn, err := websocketUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("cannot upgrade connection", err)
			return
		}

		client := NewClient(r.Context(), conn, d, userID)
		d.AddClient(client)

		// The client must authenticate before anything is delivered.
		authCtx, cancelAuth := context.WithTimeout(client.ctx, authWindow)
		client.cancelAuth = cancelAuth
		go func() {
			<-authCtx.Done()
			if !client.authed {
				log.Warn("websocket auth timeout", "user_id", userID)
				client.cancel()
			}
		}()

		go client.ReadMessage()
		go client.WriteMessage()
	}
}

func (d *Dispatcher) route(c *Client, event websocketdto.Event) error {
	handle, ok := d.handlers[event.Type]
	if !ok {
		return fmt.Errorf("unknown event type %q", event.Type)
	}
	return handle(c, event)
}

func (d *Dispatcher) AddClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	d.clients[client] = true
}

func (d *Dispatcher) RemoveClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	if _, ok := d.clients[client]; ok {
		client.cancel()
		delete(d.clients, client)
	}
}

// WriteToUser delivers the event to every authenticated connection of the
// user. Delivery is best effort: a slow consumer is skipped, not awaited.
func (d *Dispatcher) WriteToUser(userID string, msg websocketdto.Event) {
	d.RLock()
	defer d.RUnlock()

	for client := range d.clients {
		if client.userID != userID || !client.authed {
			continue
		}
		select {
		case client.egress <- msg:
		default:
			d.log.Action("writeToUser").Warn("dropping event, client egress full",
				"user_id", userID, "type", msg.Type)
		}
	}
}
