// Package reviews holds the ordered customer review list merged into the
// site document on export.
package reviews

// Review is one customer review entry.
type Review struct {
	Rating int    `json:"rating"`
	Name   string `json:"name"`
	Review string `json:"review"`
}

// List is an ordered collection of reviews. Order is preserved through the
// document round trip.
type List struct {
	items []Review
}

// NewList returns an empty review list.
func NewList() *List {
	return &List{}
}

// Replace swaps the whole list, e.g. when seeding from an imported document.
func (l *List) Replace(items []Review) {
	l.items = append([]Review(nil), items...)
}

// Add appends a new review with the default five-star rating.
func (l *List) Add() *Review {
	l.items = append(l.items, Review{Rating: 5})
	return &l.items[len(l.items)-1]
}

// Items returns a copy of the reviews in order.
func (l *List) Items() []Review {
	return append([]Review(nil), l.items...)
}

// Len reports the number of reviews.
func (l *List) Len() int {
	return len(l.items)
}

// Update replaces the review at index i. Out-of-range indices are ignored.
func (l *List) Update(i int, review Review) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items[i] = review
}

// Delete removes the review at index i. Out-of-range indices are ignored.
func (l *List) Delete(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// Move swaps the review at index i with its neighbor in the given direction
// (-1 up, +1 down). Moves past either end are ignored.
func (l *List) Move(i, direction int) {
	j := i + direction
	if i < 0 || i >= len(l.items) || j < 0 || j >= len(l.items) {
		return
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
}
