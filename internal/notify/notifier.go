// internal/notify/notifier.go
package notify

import (
	"log"

	"github.com/hypetribe/engagement-backend/internal/model"
)

// Notifier delivers an assignment message to a participant. Delivery is
// best effort: the assignment batch never fails because a message did not
// go out.
type Notifier interface {
	Notify(p model.Participant, message string) error
}

// LogNotifier stands in for the Telegram transport and just logs.
type LogNotifier struct{}

func (n *LogNotifier) Notify(p model.Participant, message string) error {
	log.Printf("📨 notify participant %d (@%s): %s\n", p.ID, p.Handle, message)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
