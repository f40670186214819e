package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/message_broker_dto"
	websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"

	"github.com/rabbitmq/amqp091-go"
)

const consumerName = "booking-service"

// Notification bridges broker events onto user websockets and the
// notification store.
type Notification struct {
	ctx        context.Context
	mylog      mylogger.Logger
	dispatcher ports.INotifyWebsocket
	broker     ports.IEventBroker
	notifier   ports.INotificationService
}

func New(
	ctx context.Context,
	mylog mylogger.Logger,
	dispatcher ports.INotifyWebsocket,
	broker ports.IEventBroker,
	notifier ports.INotificationService,
) *Notification {
	return &Notification{
		ctx:        ctx,
		mylog:      mylog,
		dispatcher: dispatcher,
		broker:     broker,
		notifier:   notifier,
	}
}

func (n *Notification) Run() error {
	chTracking, err := n.broker.Consume(n.ctx, ports.QueueTrackingUpdates, consumerName)
	if err != nil {
		return err
	}

	chStatus, err := n.broker.Consume(n.ctx, ports.QueueReservationStatus, consumerName)
	if err != nil {
		return err
	}

	go n.work(n.ctx, chTracking, n.TrackingUpdate)
	go n.work(n.ctx, chStatus, n.ReservationStatus)

	return nil
}

func (n *Notification) work(
	ctx context.Context,
	ch <-chan amqp091.Delivery,
	Do func(msg amqp091.Delivery) error,
) {
	log := n.mylog.Action("consume")

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			if err := Do(msg); err != nil {
				log.Error("cannot handle broker message", err, "routing_key", msg.RoutingKey)
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)

		case <-ctx.Done():
			return
		}
	}
}

// TrackingUpdate pushes a GPS point from the tracking service to the client
// side and stores a notification so offline clients catch up later.
func (n *Notification) TrackingUpdate(msg amqp091.Delivery) error {
	m := messagebrokerdto.TrackingUpdate{}
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}

	payload, err := json.Marshal(websocketdto.TrackingUpdate{
		ReservationID: m.ReservationID,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		Status:        m.Status,
		Address:       m.Address,
		RecordedAt:    m.RecordedAt,
	})
	if err != nil {
		return err
	}

	n.dispatcher.WriteToUser(m.ClientID, websocketdto.Event{
		Type: websocketdto.EventTrackingUpdate,
		Data: payload,
	})

	n.notifier.Notify(m.ClientID, "tracking_update",
		"Position mise à jour",
		fmt.Sprintf("Votre colis a été localisé: %s", m.Address),
		map[string]any{"reservation_id": m.ReservationID})

	return nil
}

// ReservationStatus fans a state machine move out to both parties' sockets.
func (n *Notification) ReservationStatus(msg amqp091.Delivery) error {
	m := messagebrokerdto.ReservationStatus{}
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}

	payload, err := json.Marshal(websocketdto.ReservationStatusUpdate{
		ReservationID: m.ReservationID,
		TrackingCode:  m.TrackingCode,
		Status:        m.Status,
		Version:       m.Version,
		CorrelationID: m.CorrelationID,
	})
	if err != nil {
		return err
	}

	event := websocketdto.Event{
		Type: websocketdto.EventReservationStatus,
		Data: payload,
	}
	n.dispatcher.WriteToUser(m.ClientID, event)
	n.dispatcher.WriteToUser(m.TransporteurID, event)

	return nil
}
