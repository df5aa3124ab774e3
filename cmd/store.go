package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/incense/internal/shared"
	"github.com/urfave/cli/v3"
)

// StoreGet prints the raw value under a key.
func (r *Runner) StoreGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key", shared.ErrMissingArgument)
	}

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	value, ok, err := store.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no value stored under %q", shared.ErrInvalidArgument, key)
	}

	return r.writePlain("%s\n", value)
}

// StoreKeys lists the stored keys with their value sizes.
func (r *Runner) StoreKeys(ctx context.Context, cmd *cli.Command) error {
	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.Keys()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		return r.writePlain("Store is empty\n")
	}
	for _, e := range entries {
		r.writePlain("%-20s %6d bytes  %s\n", e.Key, e.Size, e.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// StoreDelete removes a key. Deleting a missing key is not an error.
func (r *Runner) StoreDelete(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key", shared.ErrMissingArgument)
	}

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(key); err != nil {
		return err
	}

	r.logger.Info("deleted key", "key", key)
	return r.writePlain("✓ Deleted %s\n", key)
}
