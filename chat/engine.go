// Package chat is the per-customer ordering conversation. Each customer
// walks Menu -> Granola -> Drizzle -> Request and back; every inbound event
// yields a well-defined next state, and events that make no sense for the
// current state are ignored rather than crashed on.
package chat

import (
	"context"
	"fmt"
	"strconv"

	"github.com/acailability/acaibot/catalog"
	"github.com/acailability/acaibot/hub"
	"github.com/acailability/acaibot/models"
	"github.com/acailability/acaibot/notify"
	"github.com/acailability/acaibot/session"
	"github.com/acailability/acaibot/store"
	"github.com/acailability/acaibot/utils"
)

// noteLimit caps special-request text; longer notes are cut and marked.
const noteLimit = 100

type Engine struct {
	Sessions   *session.Store
	Orders     *store.OrderStore
	Shop       *store.ShopGate
	Dispatcher *notify.Dispatcher
}

func NewEngine(sessions *session.Store, orders *store.OrderStore, shop *store.ShopGate, dispatcher *notify.Dispatcher) *Engine {
	return &Engine{
		Sessions:   sessions,
		Orders:     orders,
		Shop:       shop,
		Dispatcher: dispatcher,
	}
}

// Handle consumes one inbound event and returns the prompts to send back.
// The session lock is held for the whole event, so a single customer's
// events are processed strictly one at a time.
func (e *Engine) Handle(ctx context.Context, from Identity, ev Event) []Reply {
	if ev.Kind == EventStart {
		// Shop gate is consulted at conversation entry only. When closed the
		// conversation ends: no session survives and nothing further is
		// reachable until the shop reopens.
		if !e.Shop.IsOpen() {
			e.Sessions.Delete(from.ID)
			return []Reply{closedReply()}
		}
		sess := e.Sessions.Get(from.ID)
		sess.Lock()
		defer sess.Unlock()
		sess.State = session.StateMenu
		sess.Cart = nil
		sess.Draft = nil
		return []Reply{welcomeReply()}
	}

	sess, ok := e.Sessions.Peek(from.ID)
	if !ok {
		// No active conversation; only start opens one.
		return nil
	}
	sess.Lock()
	defer sess.Unlock()

	switch sess.State {
	case session.StateMenu:
		return e.handleMenu(ctx, from, sess, ev)
	case session.StateGranola:
		return e.handleGranola(sess, ev)
	case session.StateDrizzle:
		return e.handleDrizzle(sess, ev)
	case session.StateRequest:
		return e.handleRequest(sess, ev)
	}
	return nil
}

func (e *Engine) handleMenu(ctx context.Context, from Identity, sess *session.Session, ev Event) []Reply {
	switch ev.Kind {
	case EventMenuPick:
		return e.handleMenuPick(sess, ev.ItemKey)
	case EventViewCart:
		return []Reply{cartReply(sess)}
	case EventRemoveMenu:
		if len(sess.Cart) == 0 {
			return []Reply{cartReply(sess)}
		}
		return []Reply{removalReply(sess, "🗑 Tap an item to remove it:")}
	case EventDelete:
		removed, ok := sess.RemoveItem(ev.Index)
		if !ok {
			return []Reply{removalReply(sess, "Item not found.")}
		}
		if len(sess.Cart) == 0 {
			return []Reply{cartReply(sess)}
		}
		return []Reply{removalReply(sess, fmt.Sprintf("Removed %s", removed.Name))}
	case EventCheckout:
		return e.handleCheckout(ctx, from, sess)
	case EventBackToMenu:
		return []Reply{menuReply(sess, "👋 Welcome back!")}
	}
	return nil
}

func (e *Engine) handleMenuPick(sess *session.Session, key string) []Reply {
	item, ok := catalog.Lookup(key)
	if !ok {
		return []Reply{menuReply(sess, "This item is currently unavailable.")}
	}

	if item.Customizable {
		sess.Draft = &session.Draft{BaseName: item.Name, BasePrice: item.Price}
		sess.State = session.StateGranola
		return []Reply{granolaReply(item.Name)}
	}

	sess.AddItem(session.LineItem{Name: item.Name, Price: item.Price})
	return []Reply{menuReply(sess, fmt.Sprintf("✅ Added %s to cart!", item.Name))}
}

func (e *Engine) handleGranola(sess *session.Session, ev Event) []Reply {
	if ev.Kind != EventGranolaPick || sess.Draft == nil || !catalog.ValidGranola(ev.Choice) {
		return nil
	}
	sess.Draft.Granola = catalog.Label(ev.Choice)
	sess.State = session.StateDrizzle
	return []Reply{drizzleReply()}
}

func (e *Engine) handleDrizzle(sess *session.Session, ev Event) []Reply {
	if ev.Kind != EventDrizzlePick || sess.Draft == nil || !catalog.ValidDrizzle(ev.Choice) {
		return nil
	}
	sess.Draft.Drizzle = catalog.Label(ev.Choice)
	sess.State = session.StateRequest
	return []Reply{requestReply()}
}

func (e *Engine) handleRequest(sess *session.Session, ev Event) []Reply {
	if sess.Draft == nil {
		return nil
	}
	switch ev.Kind {
	case EventFreeText:
		sess.Draft.Note = truncateNote(ev.Text)
	case EventSkipRequest:
		// note stays unset
	default:
		return nil
	}
	return []Reply{e.finalizeDraft(sess)}
}

// finalizeDraft converts the draft into a frozen line item and returns the
// customer to the menu. Customizations do not change the price.
func (e *Engine) finalizeDraft(sess *session.Session) Reply {
	d := sess.Draft
	name := fmt.Sprintf("%s (%s, %s Drizzle)", d.BaseName, d.Granola, d.Drizzle)

	sess.AddItem(session.LineItem{Name: name, Price: d.BasePrice, Note: d.Note})
	sess.Draft = nil
	sess.State = session.StateMenu

	msg := fmt.Sprintf("✅ Added %s to cart!", name)
	if d.Note != "" {
		msg += fmt.Sprintf("\n📝 Note: %s", d.Note)
	}
	return menuReply(sess, msg)
}

func (e *Engine) handleCheckout(ctx context.Context, from Identity, sess *session.Session) []Reply {
	if len(sess.Cart) == 0 {
		return []Reply{cartReply(sess)}
	}

	items := make([]models.OrderItem, 0, len(sess.Cart))
	for _, it := range sess.Cart {
		items = append(items, models.OrderItem{
			Name:  it.Name,
			Price: it.Price,
			Note:  it.Note,
		})
	}

	order, err := e.Orders.Create(from.ID, displayName(from), items)
	if err != nil {
		utils.ErrorLogger.Printf("checkout for customer %d failed: %v", from.ID, err)
		return []Reply{menuReply(sess, "Something went wrong placing your order. Please try again.")}
	}

	e.Dispatcher.NotifyOperators(ctx, newOrderNotice(order))
	hub.BroadcastOrderCreated(order)

	sess.ClearCart()
	sess.State = session.StateMenu

	return []Reply{{
		Text: fmt.Sprintf(
			"🎉 Order Confirmed! 🎉\nOrder ID: #%s\n\nWe have received your order.\nTotal: %s\n\nThank you for shopping with Acailability!",
			order.Ref, utils.FormatPrice(order.Total)),
		Actions: []Action{{Label: "🆕 Order Again", Data: "back_to_main"}},
	}}
}

func newOrderNotice(order models.Order) string {
	summary := ""
	for _, it := range order.Items {
		summary += fmt.Sprintf("- %s (%s)\n", it.Name, utils.FormatPrice(it.Price))
		if it.Note != "" {
			summary += fmt.Sprintf("   ⚠️ Note: %s\n", it.Note)
		}
	}
	return fmt.Sprintf(
		"🚨 NEW ORDER RECEIVED 🚨\n🆔 Order #%s\n👤 Customer: @%s\n💰 Total: %s\n\nItems:\n%s\nUse /queue to manage orders.",
		order.Ref, order.CustomerName, utils.FormatPrice(order.Total), summary)
}

func truncateNote(text string) string {
	runes := []rune(text)
	if len(runes) > noteLimit {
		return string(runes[:noteLimit]) + "..."
	}
	return text
}

func displayName(from Identity) string {
	if from.Name != "" {
		return from.Name
	}
	return "customer-" + strconv.FormatInt(from.ID, 10)
}
