package contacts

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/geometry"
	"github.com/banshee-data/targeting/internal/timeutil"
)

// Entry is a board id paired with its contact.
type Entry struct {
	ID      int
	Contact Contact
}

// Board holds the fused set of known contacts keyed by id.
//
// Add keeps the board free of duplicates: at insertion time no two contacts
// of the same class overlap. Regions keep growing afterwards, so the
// property is not maintained continuously.
//
// A Board is owned by a single vehicle and is not safe for concurrent use.
type Board struct {
	clock    timeutil.Clock
	contacts map[int]Contact
}

// NewBoard creates an empty board reading time from clock.
func NewBoard(clock timeutil.Clock) *Board {
	return &Board{clock: clock, contacts: make(map[int]Contact)}
}

// Add fuses c into the board and returns the id it is stored under.
//
// A search contact matches every existing contact of its class whose current
// region contains it or whose position lies in its own region. If any match
// is tracked, c is dropped and the tracked id is returned with ok false.
// A tracked contact matches existing contacts whose region contains it.
//
// Otherwise c replaces the first match, the remaining matches are removed,
// and with no match c gets a fresh id.
func (b *Board) Add(c Contact) (id int, ok bool) {
	now := b.clock.Now()

	var matches []int
	switch c := c.(type) {
	case *SearchContact:
		area := AreaNow(c, now)
		for _, e := range b.Entries() {
			if e.Contact.Class() != c.Class() {
				continue
			}
			if AreaNow(e.Contact, now).Contains(c.Position()) || area.Contains(e.Contact.Position()) {
				if IsTracked(e.Contact) {
					return e.ID, false
				}
				matches = append(matches, e.ID)
			}
		}
	case *TrackedContact:
		matches = b.findMatching(c, now)
	default:
		panic(fmt.Sprintf("contacts: unexpected contact type %T", c))
	}

	id = b.nextID()
	if len(matches) > 0 {
		id = matches[0]
		for _, other := range matches[1:] {
			delete(b.contacts, other)
		}
	}
	b.contacts[id] = c
	return id, true
}

// findMatching returns the ids, ascending, of contacts of c's class whose
// current region contains c.
func (b *Board) findMatching(c Contact, now float64) []int {
	var ids []int
	for _, e := range b.Entries() {
		if e.Contact.Class() == c.Class() && AreaNow(e.Contact, now).Contains(c.Position()) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (b *Board) nextID() int {
	next := 0
	for id := range b.contacts {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// Insert stores c under id, replacing whatever was there.
func (b *Board) Insert(id int, c Contact) {
	b.contacts[id] = c
}

// RemoveMatching removes search contacts of c's class whose current region
// contains c. Tracked contacts are kept.
func (b *Board) RemoveMatching(c Contact) {
	for _, id := range b.findMatching(c, b.clock.Now()) {
		if !IsTracked(b.contacts[id]) {
			delete(b.contacts, id)
		}
	}
}

// Track promotes the search contact id to a tracked contact in place. It
// reports whether id now holds a tracked contact.
func (b *Board) Track(id int) bool {
	switch c := b.contacts[id].(type) {
	case *SearchContact:
		b.contacts[id] = Promote(c)
		return true
	case *TrackedContact:
		return true
	default:
		return false
	}
}

// Untrack demotes the tracked contact id back to a search contact, dropping
// its history. It panics if id holds a search contact.
func (b *Board) Untrack(id int) {
	switch c := b.contacts[id].(type) {
	case *TrackedContact:
		b.contacts[id] = Demote(c)
	case nil:
	default:
		panic(fmt.Sprintf("contacts: expected tracked contact %d, got %v", id, c))
	}
}

func (b *Board) Get(id int) (Contact, bool) {
	c, ok := b.contacts[id]
	return c, ok
}

// Take removes and returns id.
func (b *Board) Take(id int) (Contact, bool) {
	c, ok := b.contacts[id]
	delete(b.contacts, id)
	return c, ok
}

func (b *Board) Remove(id int) {
	delete(b.contacts, id)
}

func (b *Board) Count() int {
	return len(b.contacts)
}

// Entries returns every contact ordered by id.
func (b *Board) Entries() []Entry {
	out := make([]Entry, 0, len(b.contacts))
	for id, c := range b.contacts {
		out = append(out, Entry{ID: id, Contact: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AreaNow returns the current uncertainty region of c.
func (b *Board) AreaNow(c Contact) geometry.Ellipse {
	return AreaNow(c, b.clock.Now())
}

// Boundaries returns the current region outline of every contact by id.
func (b *Board) Boundaries() map[int][]r2.Vec {
	now := b.clock.Now()
	out := make(map[int][]r2.Vec, len(b.contacts))
	for id, c := range b.contacts {
		out[id] = AreaNow(c, now).Boundary()
	}
	return out
}

// Describe renders the board one contact per line.
func (b *Board) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "contacts: %d\n", len(b.contacts))
	for _, e := range b.Entries() {
		fmt.Fprintf(&sb, "  %3d %v\n", e.ID, e.Contact)
	}
	return sb.String()
}
