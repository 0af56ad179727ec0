package notification

import (
	"sync"
	"time"

	"campusporter/models"

	"github.com/google/uuid"
)

// List is the in-memory notification feed, newest first. Entries are never removed.
type List struct {
	mu    sync.RWMutex
	items []models.AppNotification
	now   func() time.Time
}

func NewList() *List {
	return &List{now: time.Now}
}

// Append prepends an unread notification and returns it.
func (l *List) Append(content models.NotificationContent) models.AppNotification {
	n := models.AppNotification{
		ID:        "notif-" + uuid.NewString(),
		Title:     content.Title,
		Body:      content.Body,
		CreatedAt: l.now(),
		Read:      false,
	}

	l.mu.Lock()
	l.items = append([]models.AppNotification{n}, l.items...)
	l.mu.Unlock()
	return n
}

// All returns a copy of the feed.
func (l *List) All() []models.AppNotification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.AppNotification, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) UnreadCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	count := 0
	for _, n := range l.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAllRead flags every existing entry as read and returns how many changed.
func (l *List) MarkAllRead() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := 0
	for i := range l.items {
		if !l.items[i].Read {
			l.items[i].Read = true
			changed++
		}
	}
	return changed
}
