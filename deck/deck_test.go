package deck

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func newTestDeck(opts ...Option) *Deck {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return New(opts...)
}

func keysOf(cards []Card) []int {
	keys := make([]int, len(cards))
	for i, c := range cards {
		keys[i] = c.Key
	}
	slices.Sort(keys)
	return keys
}

func TestAppendCardAssignsMonotonicKeys(t *testing.T) {
	d := newTestDeck()
	highest := NoKey

	for i := 0; i < 20; i++ {
		c := d.AppendCard(NewCard("f", "b", ""))
		if c.Key <= highest {
			t.Fatalf("AppendCard() key = %d, want > %d", c.Key, highest)
		}
		highest = c.Key
		if i%3 == 0 {
			d.DeleteCard(c.Key)
		}
		if i%5 == 0 {
			d.DeleteCard(0)
		}
	}
}

func TestAppendCardCopiesInput(t *testing.T) {
	d := newTestDeck()
	in := NewCard("a", "1", "", "x")
	stored := d.AppendCard(in)

	in.Tags[0] = "mutated"
	stored.Tags[0] = "mutated"

	c, ok := d.Card(stored.Key)
	if !ok {
		t.Fatal("Card() missing appended card")
	}
	if !c.IsTagged("x") {
		t.Errorf("stored card tags = %v, want [x]", c.Tags)
	}
	if in.Key != NoKey {
		t.Errorf("AppendCard() changed caller's key to %d", in.Key)
	}
}

func TestDeleteCard(t *testing.T) {
	d := newTestDeck()
	a := d.AppendCard(NewCard("a", "1", "", "x"))
	b := d.AppendCard(NewCard("b", "2", "", "y"))

	d.DeleteCard(a.Key)
	d.DeleteCard(a.Key)
	d.DeleteCard(99)

	if _, ok := d.Card(a.Key); ok {
		t.Error("Card() still returns deleted card")
	}
	if got := keysOf(d.Cards()); !slices.Equal(got, []int{b.Key}) {
		t.Errorf("Cards() keys = %v, want [%d]", got, b.Key)
	}

	c := d.AppendCard(NewCard("c", "3", ""))
	if c.Key != 2 {
		t.Errorf("key after delete = %d, want 2", c.Key)
	}
}

func TestDeleteCards(t *testing.T) {
	d := newTestDeck()
	for i := 0; i < 5; i++ {
		d.AppendCard(NewCard("f", "b", "", "x"))
	}

	d.DeleteCards(3, 1, 3, 42)

	if got := keysOf(d.Cards()); !slices.Equal(got, []int{0, 2, 4}) {
		t.Errorf("Cards() keys = %v, want [0 2 4]", got)
	}
}

func TestEditCard(t *testing.T) {
	d := newTestDeck()
	a := d.AppendCard(NewCard("a", "1", "", "x"))

	edited, err := d.EditCard(a.Key, CardFields{Front: "A", Back: "one", Prompt: "p", Tags: []string{"y", "y"}})
	if err != nil {
		t.Fatalf("EditCard() error = %v", err)
	}
	if edited.Key != a.Key {
		t.Errorf("EditCard() key = %d, want %d", edited.Key, a.Key)
	}

	got, _ := d.Card(a.Key)
	if got.Front != "A" || got.Back != "one" || got.Prompt != "p" || !slices.Equal(got.Tags, []string{"y"}) {
		t.Errorf("Card() after edit = %+v", got)
	}
	if tags := d.Tags(); !slices.Equal(tags, []string{"y"}) {
		t.Errorf("Tags() after edit = %v, want [y]", tags)
	}

	if _, err := d.EditCard(77, CardFields{Front: "z"}); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("EditCard() missing key error = %v, want ErrCardNotFound", err)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after failed edit", d.Len())
	}
}

func TestTagPruning(t *testing.T) {
	d := newTestDeck()
	a := d.AppendCard(NewCard("a", "1", "", "t", "shared"))
	b := d.AppendCard(NewCard("b", "2", "", "t"))
	d.AppendCard(NewCard("c", "3", "", "shared"))

	if got := d.Tags(); !slices.Equal(got, []string{"shared", "t"}) {
		t.Fatalf("Tags() = %v, want [shared t]", got)
	}

	d.DeleteCards(a.Key, b.Key)

	if got := d.Tags(); !slices.Equal(got, []string{"shared"}) {
		t.Errorf("Tags() after delete = %v, want [shared]", got)
	}

	empty := newTestDeck()
	if got := empty.Tags(); got == nil || len(got) != 0 {
		t.Errorf("empty Tags() = %#v, want empty non-nil slice", got)
	}
}

func TestRebuildActive(t *testing.T) {
	d := newTestDeck()
	d.AppendCard(NewCard("a", "1", "", "x"))
	d.AppendCard(NewCard("b", "2", "", "y"))
	d.AppendCard(NewCard("c", "3", "", "x", "y"))
	d.AppendCard(NewCard("d", "4", "", "z"))

	tests := []struct {
		name string
		tags []string
		want []int
	}{
		{"single tag", []string{"x"}, []int{0, 2}},
		{"two tags without duplicates", []string{"x", "y"}, []int{0, 1, 2}},
		{"reuse previous selection", nil, []int{0, 1, 2}},
		{"unknown tag", []string{"nope"}, []int{}},
		{"duplicate tags", []string{"z", "z"}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.RebuildActive(tt.tags...)
			active := d.Active()
			if got := keysOf(active); !slices.Equal(got, tt.want) {
				t.Errorf("Active() keys = %v, want %v", got, tt.want)
			}
			for _, c := range active {
				if !slices.ContainsFunc(d.ActiveTags(), c.IsTagged) {
					t.Errorf("active card %d has no active tag", c.Key)
				}
			}
			if d.Pending() != len(active) {
				t.Errorf("Pending() = %d, want %d", d.Pending(), len(active))
			}
		})
	}
}

func TestRebuildActiveIsNotAutomatic(t *testing.T) {
	d := newTestDeck()
	d.AppendCard(NewCard("a", "1", "", "x"))
	d.RebuildActive("x")

	d.AppendCard(NewCard("b", "2", "", "x"))
	if got := len(d.Active()); got != 1 {
		t.Errorf("Active() before rebuild = %d cards, want 1", got)
	}

	d.RebuildActive()
	if got := len(d.Active()); got != 2 {
		t.Errorf("Active() after rebuild = %d cards, want 2", got)
	}
}

func TestDrawNextServesEachActiveCardOnce(t *testing.T) {
	d := newTestDeck()
	for i := 0; i < 30; i++ {
		tag := "even"
		if i%2 == 1 {
			tag = "odd"
		}
		d.AppendCard(NewCard("f", "b", "", tag))
	}
	d.RebuildActive("odd")
	active := d.Active()

	for round := 0; round < 3; round++ {
		var drawn []Card
		for range active {
			drawn = append(drawn, d.DrawNext())
		}
		if got, want := keysOf(drawn), keysOf(active); !slices.Equal(got, want) {
			t.Fatalf("round %d drew keys %v, want %v", round, got, want)
		}
		if d.State() != CycleEmpty {
			t.Errorf("State() after exhausting cycle = %v, want %v", d.State(), CycleEmpty)
		}
	}
}

func TestDrawNextReshufflesWhenExhausted(t *testing.T) {
	shuffles := 0
	d := newTestDeck(WithReshuffleHook(func(size int) {
		shuffles++
		if size != 3 {
			t.Errorf("reshuffle size = %d, want 3", size)
		}
	}))
	for i := 0; i < 3; i++ {
		d.AppendCard(NewCard("f", "b", "", "x"))
	}

	d.RebuildActive("x")
	if shuffles != 1 {
		t.Fatalf("shuffles after rebuild = %d, want 1", shuffles)
	}
	if d.State() != CycleFilled {
		t.Errorf("State() after rebuild = %v, want %v", d.State(), CycleFilled)
	}

	for i := 0; i < 3; i++ {
		d.DrawNext()
	}
	if shuffles != 1 {
		t.Errorf("shuffles while draining = %d, want 1", shuffles)
	}

	d.DrawNext()
	if shuffles != 2 {
		t.Errorf("shuffles after extra draw = %d, want 2", shuffles)
	}
	if d.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", d.Pending())
	}
}

func TestShuffleCoversPermutations(t *testing.T) {
	d := New()
	for i := 0; i < 3; i++ {
		d.AppendCard(NewCard("f", "b", "", "x"))
	}

	seen := make(map[[3]int]int)
	for i := 0; i < 600; i++ {
		d.RebuildActive("x")
		var order [3]int
		for j := range order {
			order[j] = d.DrawNext().Key
		}
		seen[order]++
	}
	if len(seen) != 6 {
		t.Errorf("saw %d distinct orders, want all 6", len(seen))
	}
}

func TestSingleActiveCardScenario(t *testing.T) {
	d := newTestDeck()
	d.AppendCard(NewCard("a", "1", "", "x"))
	d.AppendCard(NewCard("b", "2", "", "y"))

	d.RebuildActive("x")
	active := d.Active()
	if len(active) != 1 || active[0].Front != "a" {
		t.Fatalf("Active() = %+v, want only card a", active)
	}

	for i := 0; i < 2; i++ {
		c := d.DrawNext()
		if c.Front != "a" || c.Back != "1" || !slices.Equal(c.Tags, []string{"x"}) {
			t.Errorf("draw %d = %+v, want card a", i, c)
		}
	}
}

func TestDrawNextWithoutActiveCards(t *testing.T) {
	d := newTestDeck()
	d.RebuildActive()

	if d.State() != CycleNoActive {
		t.Errorf("State() = %v, want %v", d.State(), CycleNoActive)
	}
	c := d.DrawNext()
	if c.Key != NoKey || c.Front != NoActiveCard.Front {
		t.Errorf("DrawNext() = %+v, want placeholder", c)
	}
}
