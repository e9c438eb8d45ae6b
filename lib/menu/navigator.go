package menu

import (
	"context"
	"frsmenu/lib/scrapers/frs"
	"sync"
)

// MenuSource is satisfied by *frs.Client.
type MenuSource interface {
	WeekMenu(ctx context.Context, baseSaturday string, offset int) ([]frs.Day, error)
}

// Navigator holds the week an interactive front-end is looking at. Weeks are
// addressed relative to a fixed base Saturday so that moving back and forth
// always lands on the same weeks.
type Navigator struct {
	source MenuSource
	base   string

	lock   sync.Mutex
	offset int
	days   []frs.Day
	// offset `days` were loaded at
	loaded int
}

func NewNavigator(source MenuSource, baseSaturday string) *Navigator {
	return &Navigator{
		source: source,
		base:   baseSaturday,
	}
}

func (n *Navigator) Base() string {
	return n.base
}

func (n *Navigator) Offset() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.offset
}

func (n *Navigator) Next() {
	n.lock.Lock()
	n.offset++
	n.lock.Unlock()
}

func (n *Navigator) Prev() {
	n.lock.Lock()
	n.offset--
	n.lock.Unlock()
}

func (n *Navigator) Current() {
	n.lock.Lock()
	n.offset = 0
	n.lock.Unlock()
}

// Load fetches the week at the current offset. The previously loaded week is
// kept when the fetch fails.
func (n *Navigator) Load(ctx context.Context) ([]frs.Day, error) {
	offset := n.Offset()
	days, err := n.source.WeekMenu(ctx, n.base, offset)
	if err != nil {
		return nil, err
	}

	n.lock.Lock()
	defer n.lock.Unlock()
	n.days = days
	n.loaded = offset
	return days, nil
}

// Days returns the last week that was loaded successfully.
func (n *Navigator) Days() []frs.Day {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.days
}

// Title describes the week Days returns, which lags behind Offset after a
// failed Load.
func (n *Navigator) Title() string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return WeekTitle(n.days, n.loaded)
}
