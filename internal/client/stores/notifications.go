package stores

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

type NotificationsState struct {
	Status
	Notifications []models.Notification
	UnreadCount   int
}

func cloneNotifications(s NotificationsState) NotificationsState {
	s.Notifications = slices.Clone(s.Notifications)
	return s
}

func notificationID(n models.Notification) string { return n.NotificationID }

func countUnread(st *NotificationsState) {
	n := 0
	for _, it := range st.Notifications {
		if !it.IsRead {
			n++
		}
	}
	st.UnreadCount = n
}

type Notifications struct {
	*store[NotificationsState]
	api client.Notifications
}

func NewNotifications(api client.Notifications) *Notifications {
	return &Notifications{store: newStore(cloneNotifications), api: api}
}

func (s *Notifications) Snapshot() NotificationsState {
	st, status := s.snapshot()
	st.Status = status
	return st
}

func (s *Notifications) FetchAll(ctx context.Context) ([]models.Notification, error) {
	return act(s.store, func() ([]models.Notification, error) {
		return s.api.List(ctx)
	}, func(st *NotificationsState, v []models.Notification) {
		st.Notifications = v
		countUnread(st)
	})
}

func (s *Notifications) MarkRead(ctx context.Context, id string) error {
	return act0(s.store, func() error {
		return s.api.MarkRead(ctx, id)
	}, func(st *NotificationsState) {
		for i := range st.Notifications {
			if st.Notifications[i].NotificationID == id {
				st.Notifications[i].IsRead = true
			}
		}
		countUnread(st)
	})
}

func (s *Notifications) MarkAllRead(ctx context.Context) error {
	return act0(s.store, func() error {
		return s.api.MarkAllRead(ctx)
	}, func(st *NotificationsState) {
		for i := range st.Notifications {
			st.Notifications[i].IsRead = true
		}
		countUnread(st)
	})
}

func (s *Notifications) Delete(ctx context.Context, id string) error {
	return act0(s.store, func() error {
		return s.api.Delete(ctx, id)
	}, func(st *NotificationsState) {
		st.Notifications = removeByID(st.Notifications, notificationID, id)
		countUnread(st)
	})
}
