// Package queue renders the pending-order list for operators and runs the
// serve action. Every render queries the store fresh, so an operator never
// sees an actionable button for an order a colleague just served.
package queue

import (
	"context"
	"fmt"

	"github.com/acailability/acaibot/chat"
	"github.com/acailability/acaibot/hub"
	"github.com/acailability/acaibot/models"
	"github.com/acailability/acaibot/notify"
	"github.com/acailability/acaibot/store"
	"github.com/acailability/acaibot/utils"
)

type Presenter struct {
	Orders     *store.OrderStore
	Dispatcher *notify.Dispatcher
}

func NewPresenter(orders *store.OrderStore, dispatcher *notify.Dispatcher) *Presenter {
	return &Presenter{Orders: orders, Dispatcher: dispatcher}
}

// View renders the current queue with one serve action per order.
func (p *Presenter) View() (chat.Reply, error) {
	orders, err := p.Orders.ListPending()
	if err != nil {
		return chat.Reply{}, err
	}

	if len(orders) == 0 {
		return chat.Reply{Text: "✅ All orders served! The queue is empty."}, nil
	}

	text := "📋 Active Order Queue\n\n"
	actions := make([]chat.Action, 0, len(orders)+1)

	for _, order := range orders {
		text += fmt.Sprintf("🆔 #%s | 👤 %s\n", order.Ref, order.CustomerName)
		for _, item := range order.Items {
			text += fmt.Sprintf(" - %s\n", item.Name)
			if item.Note != "" {
				text += fmt.Sprintf("   ⚠️ Note: %s\n", item.Note)
			}
		}
		text += fmt.Sprintf("💰 Total: %s\n-------------------\n", utils.FormatPrice(order.Total))

		actions = append(actions, chat.Action{
			Label: fmt.Sprintf("✅ Serve Order #%s", order.Ref),
			Data:  "serve_" + order.Ref,
		})
	}

	actions = append(actions, chat.Action{Label: "🔄 Refresh Queue", Data: "refresh_queue"})
	return chat.Reply{Text: text, Actions: actions}, nil
}

// Serve completes one order. The status transition decides who notifies:
// of N concurrent serves on the same ref only the one that actually moved
// pending -> served sends the customer their ready message. Unknown or
// already-served refs just fall through to a fresh render.
func (p *Presenter) Serve(ctx context.Context, ref string) (chat.Reply, error) {
	order, err := p.Orders.GetByRef(ref)
	switch err {
	case nil:
		served, err := p.Orders.MarkServed(ref)
		if err != nil {
			return chat.Reply{}, err
		}
		if served {
			p.Dispatcher.NotifyCustomer(ctx, order.CustomerID, readyNotice(order))
			p.Dispatcher.NotifyOperators(ctx, fmt.Sprintf("✅ Order #%s marked served.", order.Ref))
			order.Status = models.StatusServed
			hub.BroadcastOrderServed(order)
		}
	case store.ErrOrderNotFound:
		// already handled elsewhere; re-render regardless
	default:
		return chat.Reply{}, err
	}

	return p.View()
}

func readyNotice(order models.Order) string {
	return fmt.Sprintf("🥣 Order #%s is ready!\nThank you for ordering with Acailability! 🍓🍌", order.Ref)
}
