package user

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewNameCollator orders display names the way a Japanese reader expects.
// A Collator is not safe for concurrent use.
func NewNameCollator() *collate.Collator {
	return collate.New(language.Japanese)
}

// SortByName orders users by name, keeping the input order for equal names.
func SortByName(users []User) {
	c := NewNameCollator()
	sort.SliceStable(users, func(i, j int) bool {
		return c.CompareString(users[i].Name, users[j].Name) < 0
	})
}
