package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	item, ok := Lookup("acai")
	assert.True(t, ok)
	assert.Equal(t, "Classic Acai Bowl", item.Name)
	assert.Equal(t, 6.00, item.Price)
	assert.True(t, item.Customizable)

	item, ok = Lookup("banana")
	assert.True(t, ok)
	assert.False(t, item.Customizable)

	_, ok = Lookup("durian")
	assert.False(t, ok)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Choco Banana", Label("choco_banana"))
	assert.Equal(t, "Maple", Label("maple"))
	assert.Equal(t, "Honey", Label("honey"))
}

func TestChoiceValidation(t *testing.T) {
	assert.True(t, ValidGranola("maple"))
	assert.False(t, ValidGranola("honey"))
	assert.True(t, ValidDrizzle("honey"))
	assert.False(t, ValidDrizzle("maple"))
}

func TestItemsIsACopy(t *testing.T) {
	menu := Items()
	menu[0].Price = 99.0

	item, _ := Lookup(menu[0].Key)
	assert.Equal(t, 6.00, item.Price)
}
