package ports

import websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"

type INotifyWebsocket interface {
	WriteToUser(userID string, msg websocketdto.Event)
}
