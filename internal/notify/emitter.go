// Package notify writes informational feed entries as a side effect of
// select mutations. Emission is best effort and independent of the
// audit trail.
package notify

import (
	"context"
	"log"
	"strings"
	"time"

	"project-tracker/internal/models"
)

type Sink interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// timestampFormat mirrors the browser-locale string the feed displays.
const timestampFormat = "1/2/2006, 3:04:05 PM"

type Emitter struct {
	sink Sink
	now  func() time.Time
}

func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, now: time.Now}
}

// Emit stores one notification, substituting name for the {name}
// placeholder in message. Failures are logged and swallowed.
func (e *Emitter) Emit(ctx context.Context, message, name string) {
	e.save(ctx, strings.Replace(message, "{name}", name, 1))
}

// Post stores message exactly as given, without placeholder
// substitution. Used for caller-supplied messages.
func (e *Emitter) Post(ctx context.Context, message string) {
	e.save(ctx, message)
}

func (e *Emitter) save(ctx context.Context, message string) {
	n := &models.Notification{
		Message:   message,
		Timestamp: e.now().Format(timestampFormat),
	}
	if err := e.sink.CreateNotification(ctx, n); err != nil {
		log.Printf("notify: failed to save notification: %v", err)
	}
}
