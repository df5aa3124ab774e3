package main

import (
	"context"

	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/tasks"
	"github.com/urfave/cli/v3"
)

// QuoteToday prints today's reflection, picking and caching a new one after midnight.
func (r *Runner) QuoteToday(ctx context.Context, cmd *cli.Command) error {
	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	quotes := tasks.NewQuoteRotator(store, r.clock, nil, r.logger)
	quote, err := quotes.QuoteForToday(r.quotePool())
	if err != nil {
		return err
	}

	return r.writePlain("“%s”\n", quote)
}

// QuoteList prints the pool and marks today's reflection when one has been picked.
func (r *Runner) QuoteList(ctx context.Context, cmd *cli.Command) error {
	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	cached := tasks.NewQuoteRotator(store, r.clock, nil, r.logger).Cached()
	today := cached.ValidFor(models.DayKey(r.clock.Now()))

	r.writePlainHeader("Reflections")
	for i, q := range r.quotePool() {
		mark := " "
		if today && q == cached.Text {
			mark = "*"
		}
		r.writePlain("%s %2d. %s\n", mark, i+1, q)
	}
	return nil
}
