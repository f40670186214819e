package ports

import (
	"context"

	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/message_broker_dto"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QueueTrackingUpdates   = "tracking_updates"
	QueueReservationStatus = "reservation_status"
)

type IEventBroker interface {
	Close() error
	PublishReservationStatus(ctx context.Context, msg messagebrokerdto.ReservationStatus) error
	Consume(ctx context.Context, queue, consumer string) (<-chan amqp.Delivery, error)
}
