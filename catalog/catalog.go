// Package catalog holds the static shop menu plus the granola and drizzle
// choice lists used by the customization flow. Nothing here mutates at
// runtime; prices are frozen into line items the moment they are added.
package catalog

import "strings"

type Item struct {
	Key          string
	Name         string
	Price        float64
	Customizable bool
}

var items = []Item{
	{Key: "acai", Name: "Classic Acai Bowl", Price: 6.00, Customizable: true},
	{Key: "banana", Name: "Banana Pudding Acai", Price: 7.00, Customizable: false},
}

// GranolaChoices and DrizzleChoices are the raw option keys offered in the
// customization sub-flow; render labels with Label().
var (
	GranolaChoices = []string{"choco_banana", "maple", "matcha", "strawberry"}
	DrizzleChoices = []string{"hazelnut", "peanut", "honey", "cookie"}
)

// Items returns the menu in display order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Lookup finds an item by key.
func Lookup(key string) (Item, bool) {
	for _, it := range items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

// Label turns an option key into its display label, e.g.
// "choco_banana" -> "Choco Banana".
func Label(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// ValidGranola reports whether key is an offered granola option.
func ValidGranola(key string) bool {
	return contains(GranolaChoices, key)
}

// ValidDrizzle reports whether key is an offered drizzle option.
func ValidDrizzle(key string) bool {
	return contains(DrizzleChoices, key)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
