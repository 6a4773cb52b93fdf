package view

import (
	"errors"
	"sync"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
)

// ErrNavigationInProgress is returned when a page move arrives while the
// previous one is still committing.
var ErrNavigationInProgress = errors.New("view: navigation in progress")

// PagerState is the pager's phase.
type PagerState int

const (
	PagerIdle PagerState = iota
	PagerPaging
	PagerCommitting
)

func (s PagerState) String() string {
	switch s {
	case PagerPaging:
		return "paging"
	case PagerCommitting:
		return "committing"
	default:
		return "idle"
	}
}

// Page is one of the three pages held by a Pager.
type Page struct {
	Date   time.Time
	Center bool
}

const centerPage = 1

// Pager keeps a previous/current/next window of pages. Moving to an edge
// page and settling commits the new date and resets to the center.
type Pager struct {
	mu     sync.Mutex
	state  PagerState
	mode   calendar.ViewMode
	index  int
	pages  [3]Page
	commit func(time.Time)
}

// NewPager centers a pager on date. commit receives the date of every
// settled edge page.
func NewPager(date time.Time, mode calendar.ViewMode, commit func(time.Time)) *Pager {
	p := &Pager{mode: mode, commit: commit}
	p.reset(date)
	return p
}

func (p *Pager) reset(center time.Time) {
	p.pages = [3]Page{
		{Date: dateutil.Navigate(center, dateutil.Prev, p.mode)},
		{Date: center, Center: true},
		{Date: dateutil.Navigate(center, dateutil.Next, p.mode)},
	}
	p.index = centerPage
}

// Pages returns the current window.
func (p *Pager) Pages() []Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Page{}, p.pages[:]...)
}

// Index is the page being shown, 0 to 2.
func (p *Pager) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// State returns the pager phase.
func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the date of the page being shown.
func (p *Pager) Current() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pages[p.index].Date
}

// Begin starts moving toward the page in dir.
func (p *Pager) Begin(dir dateutil.Direction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == PagerCommitting {
		return ErrNavigationInProgress
	}
	p.state = PagerPaging
	p.index = centerPage + int(dir)
	return nil
}

// Settle finishes a move. Settling on the center page returns to idle;
// settling on an edge commits its date and recenters.
func (p *Pager) Settle() error {
	p.mu.Lock()
	switch p.state {
	case PagerCommitting:
		p.mu.Unlock()
		return ErrNavigationInProgress
	case PagerIdle:
		p.mu.Unlock()
		return nil
	}
	if p.index == centerPage {
		p.state = PagerIdle
		p.mu.Unlock()
		return nil
	}
	target := p.pages[p.index].Date
	p.state = PagerCommitting
	p.mu.Unlock()

	if p.commit != nil {
		p.commit(target)
	}

	p.mu.Lock()
	p.reset(target)
	p.state = PagerIdle
	p.mu.Unlock()
	return nil
}

// Step is Begin followed by Settle.
func (p *Pager) Step(dir dateutil.Direction) error {
	if err := p.Begin(dir); err != nil {
		return err
	}
	return p.Settle()
}

// Sync regenerates the window after an external date or mode change. It is
// ignored unless the pager is idle.
func (p *Pager) Sync(date time.Time, mode calendar.ViewMode) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PagerIdle {
		return false
	}
	if mode == p.mode && date.Equal(p.pages[centerPage].Date) {
		return false
	}
	p.mode = mode
	p.reset(date)
	return true
}
