package ws

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"

	"github.com/golang-jwt/jwt"
)

type EventHandle func(c *Client, e websocketdto.Event) error

type EventHandler struct {
	accessSecret string
}

func NewEventHandler(accessSecret string) *EventHandler {
	return &EventHandler{
		accessSecret: accessSecret,
	}
}

// AuthHandler validates the first frame of a connection: the token must be
// valid, unexpired and belong to the user id in the path.
func (eh *EventHandler) AuthHandler(client *Client, e websocketdto.Event) error {
	var token websocketdto.AuthMessage
	if err := json.Unmarshal(e.Data, &token); err != nil {
		return err
	}

	tokenString := strings.TrimPrefix(token.Token, "Bearer ")
	tokenJWT, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(eh.accessSecret), nil
	})
	if err != nil {
		return err
	}
	if !tokenJWT.Valid {
		return fmt.Errorf("invalid token")
	}

	claims, ok := tokenJWT.Claims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("cannot get claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return fmt.Errorf("cannot get user_id")
	}
	if client.userID != userID {
		return fmt.Errorf("token does not match connection user")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return fmt.Errorf("no exp claim")
	}
	if time.Now().Unix() > int64(exp) {
		return fmt.Errorf("token expired")
	}

	client.authed = true
	if client.cancelAuth != nil {
		client.cancelAuth()
	}
	return nil
}
