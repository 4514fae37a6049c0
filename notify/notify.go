// Package notify fans order-lifecycle messages out to operators and
// customers. Delivery is best-effort as a matter of policy: a blocked or
// vanished recipient is logged and skipped, and never fails the order
// transition that triggered the message.
package notify

import (
	"context"

	"github.com/acailability/acaibot/utils"
)

// Messenger is the outbound side of the chat transport.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type Dispatcher struct {
	Messenger Messenger
	Operators []int64
}

func NewDispatcher(m Messenger, operators []int64) *Dispatcher {
	return &Dispatcher{Messenger: m, Operators: operators}
}

// IsOperator checks the allow-list consulted on every operator-only command.
func (d *Dispatcher) IsOperator(chatID int64) bool {
	for _, id := range d.Operators {
		if id == chatID {
			return true
		}
	}
	return false
}

// NotifyOperators sends text to every operator. One unreachable operator
// must not stop delivery to the rest.
func (d *Dispatcher) NotifyOperators(ctx context.Context, text string) {
	for _, id := range d.Operators {
		if err := d.Messenger.Send(ctx, id, text); err != nil {
			utils.ErrorLogger.Printf("notify operator %d failed: %v", id, err)
		}
	}
}

// NotifyCustomer sends one best-effort message. Failures are swallowed; the
// customer may have blocked the bot or left.
func (d *Dispatcher) NotifyCustomer(ctx context.Context, chatID int64, text string) {
	if err := d.Messenger.Send(ctx, chatID, text); err != nil {
		utils.ErrorLogger.Printf("notify customer %d failed: %v", chatID, err)
	}
}
