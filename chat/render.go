package chat

import (
	"fmt"

	"github.com/acailability/acaibot/catalog"
	"github.com/acailability/acaibot/session"
	"github.com/acailability/acaibot/utils"
)

func menuActions() []Action {
	var actions []Action
	for _, item := range catalog.Items() {
		actions = append(actions, Action{
			Label: item.Name,
			Data:  "menu_" + item.Key,
		})
	}
	actions = append(actions, Action{Label: "🛒 View Cart / Checkout", Data: "view_cart"})
	return actions
}

func closedReply() Reply {
	return Reply{
		Text: "🔴 ACAILABILITY IS CLOSED 🔴\n\nSorry, we are not accepting new orders right now :(\nIn the meantime, look out for the next drop!",
	}
}

func welcomeReply() Reply {
	return Reply{
		Text:    "👋 Hello and welcome to Acailability!\n\nPlease select an item from the menu below to start your order:",
		Actions: menuActions(),
	}
}

// menuReply re-renders the menu after a cart mutation; the running total is
// always recomputed from the cart so it can never drift.
func menuReply(sess *session.Session, message string) Reply {
	return Reply{
		Text: fmt.Sprintf("%s\n\nCurrent Total: %s\nWhat else would you like?",
			message, utils.FormatPrice(sess.Total())),
		Actions: menuActions(),
	}
}

func cartReply(sess *session.Session) Reply {
	if len(sess.Cart) == 0 {
		return Reply{
			Text:    "Your cart is empty!",
			Actions: []Action{{Label: "🔙 Back to Menu", Data: "back_to_main"}},
		}
	}

	text := "🛒 Your Cart:\n\n"
	for _, item := range sess.Cart {
		text += fmt.Sprintf("• %s - %s\n", item.Name, utils.FormatPrice(item.Price))
		if item.Note != "" {
			text += fmt.Sprintf("   📝 Note: %s\n", item.Note)
		}
	}
	text += fmt.Sprintf("\nTotal: %s", utils.FormatPrice(sess.Total()))

	return Reply{
		Text: text,
		Actions: []Action{
			{Label: "✅ Checkout", Data: "checkout"},
			{Label: "❌ Remove Item", Data: "remove_menu"},
			{Label: "🔙 Back to Menu", Data: "back_to_main"},
		},
	}
}

func removalReply(sess *session.Session, headline string) Reply {
	actions := make([]Action, 0, len(sess.Cart)+1)
	for i, item := range sess.Cart {
		actions = append(actions, Action{
			Label: "❌ " + item.Name,
			Data:  fmt.Sprintf("delete_%d", i),
		})
	}
	actions = append(actions, Action{Label: "🔙 Back to Cart", Data: "view_cart"})
	return Reply{Text: headline, Actions: actions}
}

func granolaReply(itemName string) Reply {
	actions := make([]Action, 0, len(catalog.GranolaChoices))
	for _, key := range catalog.GranolaChoices {
		actions = append(actions, Action{
			Label: catalog.Label(key),
			Data:  "granola_" + key,
		})
	}
	return Reply{
		Text:    fmt.Sprintf("Customizing %s\nChoose your Granola!", itemName),
		Actions: actions,
	}
}

func drizzleReply() Reply {
	actions := make([]Action, 0, len(catalog.DrizzleChoices))
	for _, key := range catalog.DrizzleChoices {
		actions = append(actions, Action{
			Label: catalog.Label(key),
			Data:  "drizzle_" + key,
		})
	}
	return Reply{
		Text:    "Now choose your Drizzle!",
		Actions: actions,
	}
}

func requestReply() Reply {
	return Reply{
		Text:    "📝 Any special requests for the kitchen?\nText it below (e.g., 'No bananas'), or click the skip button :)",
		Actions: []Action{{Label: "⏭ Skip / No Requests", Data: "skip_request"}},
	}
}
