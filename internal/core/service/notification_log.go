package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

// Notifier receives store-level events as user-facing notifications.
type Notifier interface {
	Add(n domain.Notification) domain.Notification
}

// NotificationLog is an append-only notification sink. Entries are kept
// newest first; only the read flag ever changes, and only from false to
// true.
type NotificationLog struct {
	mu      sync.RWMutex
	entries []domain.Notification
}

func NewNotificationLog() *NotificationLog {
	return &NotificationLog{}
}

// Add appends a notification, assigning id and timestamp when unset.
func (l *NotificationLog) Add(n domain.Notification) domain.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]domain.Notification{n}, l.entries...)
	return n
}

// Load seeds the log with existing notifications, newest first.
func (l *NotificationLog) Load(ns []domain.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]domain.Notification(nil), ns...)
}

func (l *NotificationLog) MarkRead(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

func (l *NotificationLog) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		l.entries[i].Read = true
	}
}

// MostRecent returns up to n notifications, newest first.
func (l *NotificationLog) MostRecent(n int) []domain.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return append([]domain.Notification(nil), l.entries[:n]...)
}

func (l *NotificationLog) UnreadCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, n := range l.entries {
		if !n.Read {
			count++
		}
	}
	return count
}
