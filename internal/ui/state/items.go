package state

// Item is one entry of the demo word list.
type Item struct {
	ID    string
	Label string
}

// ItemsFromWords builds items whose ID and label are the word itself.
func ItemsFromWords(words []string) []Item {
	items := make([]Item, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		items = append(items, Item{ID: w, Label: w})
	}
	return items
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
