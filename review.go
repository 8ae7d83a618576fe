package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/kanadeck-api/deck"
)

const quitAnswer = ":q"

func defaultDeckPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kanadeck", "deck.json")
}

// loadDeckFile reads a deck from path, falling back to the default deck when
// the file is missing or unreadable.
func loadDeckFile(path string) (*deck.Deck, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return deck.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}

	d, err := deck.FromJSON(data)
	var derr *deck.DeserializationError
	if errors.As(err, &derr) {
		log.Printf("Warning: %s is not a valid deck, starting from the default deck: %v", path, err)
		return deck.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func saveDeckFile(path string, d *deck.Deck) error {
	data, err := d.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

type reviewStats struct {
	Correct int
	Total   int
}

// askFunc asks the user for the answer to a card.
type askFunc func(message string) (string, error)

func surveyAsk(message string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message}, &answer)
	if errors.Is(err, terminal.InterruptErr) {
		return quitAnswer, nil
	}
	return strings.TrimSpace(answer), err
}

// runReview draws cards until rounds answers were given (0 means no limit)
// or the user quits.
func runReview(d *deck.Deck, ask askFunc, out io.Writer, rounds int) (reviewStats, error) {
	var stats reviewStats
	for rounds == 0 || stats.Total < rounds {
		c := d.DrawNext()
		if c.Key == deck.NoKey {
			fmt.Fprintf(out, "%s. %s.\n", c.Front, c.Prompt)
			return stats, nil
		}

		message := c.Front
		if c.Prompt != "" {
			message = fmt.Sprintf("%s (%s)", c.Front, c.Prompt)
		}
		answer, err := ask(message)
		if err != nil {
			return stats, err
		}
		if answer == quitAnswer {
			return stats, nil
		}

		stats.Total++
		switch {
		case c.HasAnswer(answer):
			stats.Correct++
			fmt.Fprintln(out, "✓")
		case c.StartsWith(answer):
			fmt.Fprintf(out, "✗ almost: %s\n", c.Back)
		default:
			fmt.Fprintf(out, "✗ %s\n", c.Back)
		}
	}
	return stats, nil
}

func reviewCmd() *cobra.Command {
	var (
		path   string
		tags   []string
		rounds int
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review cards in the terminal",
		Long:  "Review cards in the terminal. Type " + quitAnswer + " or press Ctrl-C to stop; the deck is saved on exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeckFile(path)
			if err != nil {
				return err
			}
			d.RebuildActive(tags...)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Studying %s (%d cards)\n", strings.Join(d.ActiveTags(), ", "), len(d.Active()))

			stats, err := runReview(d, surveyAsk, out, rounds)
			if err != nil {
				return err
			}
			if stats.Total > 0 {
				fmt.Fprintf(out, "%d/%d correct\n", stats.Correct, stats.Total)
			}
			return saveDeckFile(path, d)
		},
	}

	cmd.Flags().StringVar(&path, "deck", defaultDeckPath(), "deck file")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags to study (default: last selection)")
	cmd.Flags().IntVarP(&rounds, "rounds", "n", 0, "number of cards to review (0 = until quit)")
	return cmd
}

func exportCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a deck file, or the default deck, as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deck.Default()
			if path != "" {
				var err error
				if d, err = loadDeckFile(path); err != nil {
					return err
				}
			}
			data, err := d.MarshalJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "deck", "", "deck file (default: built-in deck)")
	return cmd
}
