package models

import "time"

type Notification struct {
	NotificationID string    `json:"notificationId"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Type           string    `json:"type,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (n Notification) Validate() error {
	return required("notification", "notificationId", n.NotificationID)
}
