package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type NotificationService struct {
	ctx              context.Context
	mylog            mylogger.Logger
	notificationRepo ports.INotificationRepo
	ws               ports.INotifyWebsocket
}

func NewNotificationService(
	ctx context.Context,
	mylog mylogger.Logger,
	notificationRepo ports.INotificationRepo,
	ws ports.INotifyWebsocket,
) ports.INotificationService {
	return &NotificationService{
		ctx:              ctx,
		mylog:            mylog,
		notificationRepo: notificationRepo,
		ws:               ws,
	}
}

func (ns *NotificationService) List(userID string) (dto.NotificationListResponse, error) {
	ctx, cancel := context.WithTimeout(ns.ctx, time.Second*15)
	defer cancel()

	list, unread, err := ns.notificationRepo.ListForUser(ctx, userID, 50)
	if err != nil {
		ns.mylog.Action("ListNotifications").Error("cannot list notifications", err, "user_id", userID)
		return dto.NotificationListResponse{}, err
	}

	res := dto.NotificationListResponse{UnreadCount: unread}
	for _, m := range list {
		res.Notifications = append(res.Notifications, toNotificationResponse(m))
	}
	return res, nil
}

func (ns *NotificationService) MarkRead(userID, id string) error {
	ctx, cancel := context.WithTimeout(ns.ctx, time.Second*15)
	defer cancel()

	if err := ns.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		ns.mylog.Action("MarkNotificationRead").Error("cannot mark notification read", err,
			"notification_id", id)
		return err
	}
	return nil
}

func (ns *NotificationService) MarkAllRead(userID string) error {
	log := ns.mylog.Action("MarkAllNotificationsRead")

	ctx, cancel := context.WithTimeout(ns.ctx, time.Second*15)
	defer cancel()

	n, err := ns.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		log.Error("cannot mark notifications read", err, "user_id", userID)
		return err
	}
	log.Info("notifications marked read", "user_id", userID, "count", n)
	return nil
}

func (ns *NotificationService) Delete(userID, id string) error {
	ctx, cancel := context.WithTimeout(ns.ctx, time.Second*15)
	defer cancel()

	if err := ns.notificationRepo.Delete(ctx, id, userID); err != nil {
		ns.mylog.Action("DeleteNotification").Error("cannot delete notification", err,
			"notification_id", id)
		return err
	}
	return nil
}

// Notify stores the notification and pushes it to a connected websocket.
// It never fails the caller: a lost notification must not break a booking.
func (ns *NotificationService) Notify(userID, notifType, title, message string, data map[string]any) {
	log := ns.mylog.Action("Notify")

	ctx, cancel := context.WithTimeout(ns.ctx, time.Second*15)
	defer cancel()

	created, err := ns.notificationRepo.Create(ctx, model.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	})
	if err != nil {
		log.Error("cannot store notification", err, "user_id", userID, "type", notifType)
		return
	}

	payload, err := json.Marshal(toNotificationResponse(created))
	if err != nil {
		log.Error("cannot marshal notification", err, "notification_id", created.ID)
		return
	}
	ns.ws.WriteToUser(userID, websocketdto.Event{
		Type: websocketdto.EventNotification,
		Data: payload,
	})
}

func toNotificationResponse(m model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        m.ID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		Data:      m.Data,
		Read:      m.Read,
		CreatedAt: formatTime(m.CreatedAt),
	}
}
