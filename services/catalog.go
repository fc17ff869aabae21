package services

type CatalogItem struct {
	Name  string
	Price int64 // whole rubles
}

// Catalog is the static set of purchasable items. Built once at startup,
// passed by reference, read-only afterwards.
type Catalog struct {
	items  []CatalogItem
	prices map[string]int64
}

func NewCatalog(items []CatalogItem) *Catalog {
	prices := make(map[string]int64, len(items))
	for _, it := range items {
		prices[it.Name] = it.Price
	}
	return &Catalog{items: items, prices: prices}
}

// DefaultCatalog returns the restaurant menu.
func DefaultCatalog() *Catalog {
	return NewCatalog([]CatalogItem{
		{Name: "Пицца", Price: 500},
		{Name: "Суши", Price: 700},
		{Name: "Бургер", Price: 300},
		{Name: "Салат", Price: 200},
		{Name: "Напиток", Price: 100},
	})
}

// Items returns the menu entries in display order.
func (c *Catalog) Items() []CatalogItem {
	return c.items
}

// Price looks up the price for an item name.
func (c *Catalog) Price(name string) (int64, bool) {
	p, ok := c.prices[name]
	return p, ok
}
