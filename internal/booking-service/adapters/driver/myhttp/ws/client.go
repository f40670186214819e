package ws

import (
	"context"
	"encoding/json"

	websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"

	"github.com/gorilla/websocket"
)

const maxFrameSize = 4096

type Client struct {
	ctx    context.Context
	cancel context.CancelFunc
	conn   *websocket.Conn
	dis    *Dispatcher
	egress chan websocketdto.Event
	userID string

	// authed flips once the first frame carried a valid token.
	authed     bool
	cancelAuth context.CancelFunc
}

func NewClient(ctx context.Context, conn *websocket.Conn, dis *Dispatcher, userID string) *Client {
	cctx, cancel := context.WithCancel(ctx)
	return &Client{
		ctx:    cctx,
		cancel: cancel,
		conn:   conn,
		dis:    dis,
		egress: make(chan websocketdto.Event, 16),
		userID: userID,
	}
}

func (c *Client) ReadMessage() {
	defer c.dis.RemoveClient(c)

	c.conn.SetReadLimit(maxFrameSize)

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.dis.log.Action("wsRead").Warn("unexpected websocket close", "user_id", c.userID)
			}
			return
		}

		var event websocketdto.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}

		if err := c.dis.route(c, event); err != nil {
			c.dis.log.Action("wsRead").Error("cannot handle client event", err,
				"user_id", c.userID, "type", event.Type)
			return
		}
	}
}

func (c *Client) WriteMessage() {
	for {
		select {
		case <-c.ctx.Done():
			c.conn.Close()
			return
		case event, ok := <-c.egress:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				c.dis.log.Action("wsWrite").Error("cannot write to websocket", err,
					"user_id", c.userID)
				return
			}
		}
	}
}
