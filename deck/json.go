package deck

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
)

// DeserializationError is returned by FromJSON when the input does not
// describe a valid deck.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return "deserialize deck: " + e.Err.Error()
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

type cardJSON struct {
	Front  string   `json:"front"`
	Back   string   `json:"back"`
	Prompt string   `json:"prompt"`
	Tags   []string `json:"tags"`
	Key    int      `json:"key"`
}

type deckJSON struct {
	Cards      map[string]cardJSON `json:"cards"`
	NextKey    *int                `json:"nextKey"`
	ActiveTags []string            `json:"activeTags"`
}

// MarshalJSON encodes the cards, the key counter and the active tags. The
// active set and draw cycle are derived state and are not written.
func (d *Deck) MarshalJSON() ([]byte, error) {
	out := deckJSON{
		Cards:      make(map[string]cardJSON, len(d.cards)),
		NextKey:    &d.nextKey,
		ActiveTags: d.ActiveTags(),
	}
	for k, c := range d.cards {
		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		out.Cards[strconv.Itoa(k)] = cardJSON{
			Front:  c.Front,
			Back:   c.Back,
			Prompt: c.Prompt,
			Tags:   tags,
			Key:    c.Key,
		}
	}
	return json.Marshal(out)
}

// FromJSON rebuilds a Deck from the output of MarshalJSON. The returned deck
// has no active cards until RebuildActive is called.
func FromJSON(data []byte, opts ...Option) (*Deck, error) {
	var in deckJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &DeserializationError{Err: err}
	}
	if in.Cards == nil {
		return nil, &DeserializationError{Err: errors.New("missing cards")}
	}

	d := New(opts...)
	maxKey := NoKey
	keys := make([]int, 0, len(in.Cards))
	byKey := make(map[int]cardJSON, len(in.Cards))
	for raw, c := range in.Cards {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &DeserializationError{Err: fmt.Errorf("card key %q is not an integer", raw)}
		}
		if k < 0 {
			return nil, &DeserializationError{Err: fmt.Errorf("card key %d is negative", k)}
		}
		if c.Key != k {
			return nil, &DeserializationError{Err: fmt.Errorf("card %q carries key %d", raw, c.Key)}
		}
		if _, dup := byKey[k]; dup {
			return nil, &DeserializationError{Err: fmt.Errorf("card key %d appears twice", k)}
		}
		byKey[k] = c
		keys = append(keys, k)
		maxKey = max(maxKey, k)
	}
	slices.Sort(keys)

	switch {
	case in.NextKey == nil:
		d.nextKey = maxKey + 1
	case *in.NextKey < 0:
		return nil, &DeserializationError{Err: errors.New("nextKey is negative")}
	case *in.NextKey <= maxKey:
		return nil, &DeserializationError{Err: fmt.Errorf("nextKey %d does not exceed key %d", *in.NextKey, maxKey)}
	default:
		d.nextKey = *in.NextKey
	}

	for _, k := range keys {
		c := byKey[k]
		d.insert(NewCardWithKey(k, c.Front, c.Back, c.Prompt, c.Tags...))
	}
	d.activeTags = uniqueTags(in.ActiveTags)
	return d, nil
}
