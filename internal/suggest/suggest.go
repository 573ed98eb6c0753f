// Package suggest implements the autocomplete state machine: length-gated
// suggestion fetches, last-input-wins staleness handling, and circular
// keyboard selection that skips the "no results" placeholder.
package suggest

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/skycastlabs/skycast/internal/weather"
)

// MinQueryLength gates suggestion fetches; shorter input clears the list
// without querying.
const MinQueryLength = 3

// Searcher is the forward-geocode capability the controller consumes.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]weather.Location, error)
}

// Item is one rendered suggestion row. A placeholder row ("no results") is
// never navigable or committable.
type Item struct {
	Location    weather.Location
	Placeholder bool
}

// Key is a keyboard event the controller understands.
type Key int

const (
	KeyArrowDown Key = iota
	KeyArrowUp
	KeyEnter
)

// Controller manages suggestion fetches and selection state for one input
// field. Each request is tagged with the input value at issue time; a
// response whose tag no longer matches the current input is discarded, so a
// late-arriving earlier response can never clobber a newer one.
type Controller struct {
	searcher Searcher
	limit    int
	onCommit func(weather.Location)
	onUpdate func()

	mu       sync.Mutex
	pending  string
	items    []Item
	selected int
}

// New creates a controller. onCommit receives the suggestion chosen by
// Enter or a pointer pick; onUpdate (optional) fires after every state
// change so the host can re-render.
func New(searcher Searcher, onCommit func(weather.Location), onUpdate func()) *Controller {
	return &Controller{
		searcher: searcher,
		limit:    weather.DefaultSearchLimit,
		onCommit: onCommit,
		onUpdate: onUpdate,
		selected: -1,
	}
}

// Input reacts to a change of the input field. Trimmed input shorter than
// MinQueryLength clears state without querying; anything else issues a
// suggestion fetch in the background.
func (c *Controller) Input(ctx context.Context, text string) {
	query := strings.TrimSpace(text)

	c.mu.Lock()
	c.items = nil
	c.selected = -1
	if len(query) < MinQueryLength {
		c.pending = ""
		c.mu.Unlock()
		c.notify()
		return
	}
	c.pending = query
	c.mu.Unlock()
	c.notify()

	go func() {
		locations, err := c.searcher.Search(ctx, query, c.limit)
		c.apply(query, locations, err)
	}()
}

// apply installs a fetch result unless the input has moved on since the
// request was issued.
func (c *Controller) apply(tag string, locations []weather.Location, err error) {
	c.mu.Lock()
	if c.pending != tag {
		c.mu.Unlock()
		return
	}

	switch {
	case errors.Is(err, weather.ErrNotFound), err == nil && len(locations) == 0:
		c.items = []Item{{Placeholder: true}}
	case err != nil:
		log.Printf("suggest: fetch failed for %q: %v", tag, err)
		c.items = nil
	default:
		items := make([]Item, len(locations))
		for i, loc := range locations {
			items[i] = Item{Location: loc}
		}
		c.items = items
	}
	c.selected = -1
	c.mu.Unlock()
	c.notify()
}

// Press handles a keyboard event. The returned bool reports whether the
// host must suppress its default behavior: true for an Enter that committed
// a selection, false for an Enter that should fall through to normal form
// submission. Arrow keys wrap circularly and only ever land on navigable
// items.
func (c *Controller) Press(key Key) bool {
	c.mu.Lock()

	n := 0
	for _, item := range c.items {
		if !item.Placeholder {
			n++
		}
	}

	switch key {
	case KeyArrowDown, KeyArrowUp:
		if n == 0 {
			c.mu.Unlock()
			return false
		}
		if key == KeyArrowDown {
			c.selected = (c.selected + 1) % n
		} else {
			c.selected = (c.selected - 1 + n) % n
		}
		c.mu.Unlock()
		c.notify()
		return false

	case KeyEnter:
		if c.selected < 0 || c.selected >= n {
			c.mu.Unlock()
			return false
		}
		chosen := c.items[c.selected].Location
		c.items = nil
		c.selected = -1
		c.pending = ""
		c.mu.Unlock()
		c.notify()
		c.onCommit(chosen)
		return true
	}

	c.mu.Unlock()
	return false
}

// Pick commits a suggestion by index, the pointer-click path. Placeholder
// and out-of-range indexes are ignored.
func (c *Controller) Pick(index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.items) || c.items[index].Placeholder {
		c.mu.Unlock()
		return
	}
	chosen := c.items[index].Location
	c.items = nil
	c.selected = -1
	c.pending = ""
	c.mu.Unlock()
	c.notify()
	c.onCommit(chosen)
}

// Items returns a copy of the current suggestion rows.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Selected returns the selected index, -1 for none.
func (c *Controller) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Controller) notify() {
	if c.onUpdate != nil {
		c.onUpdate()
	}
}
