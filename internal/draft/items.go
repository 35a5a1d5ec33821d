package draft

import invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"

// Entry is an item together with the key it was stored under.
type Entry struct {
	Key  int64                  `json:"key"`
	Item invoicedomain.LineItem `json:"item"`
}

// ItemList keeps line items in insertion order under monotonically
// increasing keys. Keys are never reused, so removing an item leaves the
// order and keys of the others unchanged.
type ItemList struct {
	next  int64
	order []int64
	items map[int64]invoicedomain.LineItem
}

func NewItemList() *ItemList {
	return &ItemList{next: 1, items: map[int64]invoicedomain.LineItem{}}
}

// Add stores the inputs of item and returns its key.
func (l *ItemList) Add(item invoicedomain.LineItem) int64 {
	key := l.next
	l.next++
	l.order = append(l.order, key)
	l.items[key] = item.Inputs()
	return key
}

func (l *ItemList) Remove(key int64) bool {
	if _, ok := l.items[key]; !ok {
		return false
	}
	delete(l.items, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

func (l *ItemList) Len() int { return len(l.order) }

// Items returns a copy of the stored items in insertion order.
func (l *ItemList) Items() []invoicedomain.LineItem {
	out := make([]invoicedomain.LineItem, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.items[key])
	}
	return out
}

func (l *ItemList) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, Entry{Key: key, Item: l.items[key]})
	}
	return out
}
