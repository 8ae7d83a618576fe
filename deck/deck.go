package deck

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
)

var ErrCardNotFound = errors.New("card not found")

// CycleState describes where a Deck is in its draw cycle.
type CycleState int

const (
	CycleNoActive CycleState = iota
	CycleEmpty
	CycleFilled
)

func (s CycleState) String() string {
	switch s {
	case CycleEmpty:
		return "empty"
	case CycleFilled:
		return "filled"
	default:
		return "no_active"
	}
}

// CardFields holds the editable parts of a card.
type CardFields struct {
	Front  string   `json:"front"`
	Back   string   `json:"back"`
	Prompt string   `json:"prompt"`
	Tags   []string `json:"tags"`
}

type Option func(*Deck)

// WithRand sets the random source used to shuffle the draw cycle.
func WithRand(r *rand.Rand) Option {
	return func(d *Deck) {
		d.rng = r
	}
}

// WithReshuffleHook registers fn to be called with the cycle size every time
// the draw cycle is refilled.
func WithReshuffleHook(fn func(size int)) Option {
	return func(d *Deck) {
		d.onReshuffle = fn
	}
}

// Deck owns a collection of cards, the tags they use, and the shuffled cycle
// of active cards served by DrawNext. A Deck is not safe for concurrent use.
type Deck struct {
	cards    map[int]Card
	nextKey  int
	tagCount map[string]int

	activeTags []string
	active     []Card
	cycle      []Card

	rng         *rand.Rand
	onReshuffle func(int)
}

func New(opts ...Option) *Deck {
	d := &Deck{
		cards:    make(map[int]Card),
		tagCount: make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return d
}

// AppendCard stores a copy of c under the next unused key and returns it.
// Empty and repeated tags are dropped.
func (d *Deck) AppendCard(c Card) Card {
	c = NewCardWithKey(d.nextKey, c.Front, c.Back, c.Prompt, c.Tags...)
	d.nextKey++
	d.insert(c)
	return c.clone()
}

func (d *Deck) insert(c Card) {
	d.cards[c.Key] = c
	for _, t := range c.Tags {
		d.tagCount[t]++
	}
}

// DeleteCard removes the card stored under key. Missing keys are ignored.
func (d *Deck) DeleteCard(key int) {
	c, ok := d.cards[key]
	if !ok {
		return
	}
	delete(d.cards, key)
	d.releaseTags(c.Tags)
}

func (d *Deck) DeleteCards(keys ...int) {
	for _, k := range keys {
		d.DeleteCard(k)
	}
}

// EditCard replaces the card stored under key with one built from f.
func (d *Deck) EditCard(key int, f CardFields) (Card, error) {
	old, ok := d.cards[key]
	if !ok {
		return Card{}, fmt.Errorf("edit card %d: %w", key, ErrCardNotFound)
	}
	d.releaseTags(old.Tags)
	c := NewCardWithKey(key, f.Front, f.Back, f.Prompt, f.Tags...)
	d.insert(c)
	return c.clone(), nil
}

func (d *Deck) releaseTags(tags []string) {
	for _, t := range tags {
		d.tagCount[t]--
		if d.tagCount[t] <= 0 {
			delete(d.tagCount, t)
		}
	}
}

// Card returns the card stored under key.
func (d *Deck) Card(key int) (Card, bool) {
	c, ok := d.cards[key]
	if !ok {
		return Card{}, false
	}
	return c.clone(), true
}

// Cards returns a snapshot of every card in ascending key order.
func (d *Deck) Cards() []Card {
	out := make([]Card, 0, len(d.cards))
	for _, k := range slices.Sorted(maps.Keys(d.cards)) {
		out = append(out, d.cards[k].clone())
	}
	return out
}

// Tags returns the sorted set of tags carried by at least one card.
func (d *Deck) Tags() []string {
	out := make([]string, 0, len(d.tagCount))
	for t := range d.tagCount {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) ActiveTags() []string {
	return append([]string{}, d.activeTags...)
}

func (d *Deck) Active() []Card {
	out := make([]Card, len(d.active))
	for i, c := range d.active {
		out[i] = c.clone()
	}
	return out
}

// Pending returns how many cards are left before the cycle reshuffles.
func (d *Deck) Pending() int {
	return len(d.cycle)
}

func (d *Deck) State() CycleState {
	switch {
	case len(d.active) == 0:
		return CycleNoActive
	case len(d.cycle) == 0:
		return CycleEmpty
	default:
		return CycleFilled
	}
}

// RebuildActive recomputes the active cards from the given tags and reshuffles
// the draw cycle. With no tags, the previously selected tags are reused.
// Callers must invoke it after changing cards if the active pool should follow.
func (d *Deck) RebuildActive(tags ...string) {
	if len(tags) > 0 {
		d.activeTags = uniqueTags(tags)
	}

	selected := make(map[string]struct{}, len(d.activeTags))
	for _, t := range d.activeTags {
		selected[t] = struct{}{}
	}

	d.active = d.active[:0]
	for _, k := range slices.Sorted(maps.Keys(d.cards)) {
		c := d.cards[k]
		for _, t := range c.Tags {
			if _, ok := selected[t]; ok {
				d.active = append(d.active, c.clone())
				break
			}
		}
	}
	d.buildUniqueCycle()
}

// DrawNext serves the next card of the cycle, reshuffling the active cards
// once the cycle is exhausted. It returns NoActiveCard when nothing is active.
func (d *Deck) DrawNext() Card {
	if len(d.active) == 0 {
		return NoActiveCard.clone()
	}
	if len(d.cycle) == 0 {
		d.buildUniqueCycle()
	}
	last := len(d.cycle) - 1
	c := d.cycle[last]
	d.cycle = d.cycle[:last]
	return c.clone()
}

// buildUniqueCycle refills the cycle with a Fisher-Yates shuffle of the
// active cards.
func (d *Deck) buildUniqueCycle() {
	d.cycle = make([]Card, len(d.active))
	copy(d.cycle, d.active)
	for i := len(d.cycle) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cycle[i], d.cycle[j] = d.cycle[j], d.cycle[i]
	}
	if len(d.cycle) > 0 && d.onReshuffle != nil {
		d.onReshuffle(len(d.cycle))
	}
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
