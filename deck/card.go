package deck

import (
	"slices"
	"strings"
)

// NoKey marks a card that has not been appended to a Deck yet.
const NoKey = -1

// Card is a single flashcard. Cards are values: a Deck replaces them on edit
// instead of mutating them in place.
type Card struct {
	Front  string   `json:"front"`
	Back   string   `json:"back"`
	Prompt string   `json:"prompt"`
	Tags   []string `json:"tags"`
	Key    int      `json:"key"`
}

// NoActiveCard is returned by DrawNext when no card matches the active tags.
var NoActiveCard = Card{
	Front:  "No active cards",
	Prompt: "Select at least one tag to study",
	Tags:   []string{},
	Key:    NoKey,
}

// NewCard builds an unassigned card. Duplicate tags are dropped.
func NewCard(front, back, prompt string, tags ...string) Card {
	return NewCardWithKey(NoKey, front, back, prompt, tags...)
}

func NewCardWithKey(key int, front, back, prompt string, tags ...string) Card {
	c := Card{Front: front, Back: back, Prompt: prompt, Tags: []string{}, Key: key}
	for _, t := range tags {
		c.AppendTag(t)
	}
	return c
}

func (c Card) IsTagged(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// HasAnswer reports whether input is exactly the back of the card.
func (c Card) HasAnswer(input string) bool {
	return input != "" && input == c.Back
}

// StartsWith reports whether input is a prefix of the back of the card, so a
// partially typed correct answer is not flagged as wrong.
func (c Card) StartsWith(input string) bool {
	if input == "" {
		return false
	}
	return strings.HasPrefix(c.Back, input)
}

// AppendTag adds tag if the card does not carry it already.
func (c *Card) AppendTag(tag string) {
	if tag == "" || c.IsTagged(tag) {
		return
	}
	c.Tags = append(c.Tags, tag)
}

func (c Card) clone() Card {
	out := c
	out.Tags = slices.Clone(c.Tags)
	return out
}
