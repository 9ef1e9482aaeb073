package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/settings"
)

// Notification announces that a new item has become current.
type Notification struct {
	Title string
	Body  string
}

// Notifier delivers transition notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.Logger.InfoContext(ctx, "task_started", "title", n.Title, "body", n.Body)
	return nil
}

// Tracker owns the progress State and turns evaluations into notifications.
type Tracker struct {
	settings settings.View
	notifier Notifier

	mu    sync.Mutex
	state State
}

// NewTracker builds a Tracker. A nil notifier drops notifications.
func NewTracker(view settings.View, notifier Notifier) *Tracker {
	return &Tracker{settings: view, notifier: notifier}
}

// Tick evaluates items at now, advances the tracker state and sends a
// notification on a transition into a new current item.
func (t *Tracker) Tick(ctx context.Context, items []domain.PlanItem, now time.Time) (Snapshot, error) {
	t.mu.Lock()
	snap, next := Evaluate(items, now, t.state)
	t.state = next
	t.mu.Unlock()

	if !snap.NotifyTransition || t.notifier == nil || !t.settings.Current().ShowTaskNotification {
		return snap, nil
	}
	if err := t.notifier.Notify(ctx, TransitionNotification(snap)); err != nil {
		return snap, fmt.Errorf("sending task notification: %w", err)
	}
	return snap, nil
}

// State returns a copy of the remembered state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// TransitionNotification builds the notification for snap's current item.
func TransitionNotification(snap Snapshot) Notification {
	if snap.Current == nil {
		return Notification{}
	}
	n := Notification{Title: "Task started, " + timeAndText(*snap.Current)}
	if snap.Next != nil {
		n.Body = fmt.Sprintf("%s: %s", nextHeading(snap), timeAndText(*snap.Next))
	}
	return n
}
