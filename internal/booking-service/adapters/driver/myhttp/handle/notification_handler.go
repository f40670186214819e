package handle

import (
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type NotificationHandler struct {
	notificationService ports.INotificationService
	log                 mylogger.Logger
}

func NewNotificationHandler(ns ports.INotificationService, log mylogger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: ns,
		log:                 log,
	}
}

func (nh *NotificationHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := nh.notificationService.List(userID(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (nh *NotificationHandler) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := nh.notificationService.MarkRead(userID(r), r.PathValue("notification_id")); err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

func (nh *NotificationHandler) MarkAllRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := nh.notificationService.MarkAllRead(userID(r)); err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

func (nh *NotificationHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := nh.notificationService.Delete(userID(r), r.PathValue("notification_id")); err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}
