// Package state exposes the raw JSON documents behind each storage key,
// including the revisions kept when a document is overwritten.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/storage"
)

type StateCmd struct {
	Keys    StateKeysCmd    `cmd:"" help:"List storage keys and their sizes."`
	Get     StateGetCmd     `cmd:"" help:"Print the document stored under a key."`
	Set     StateSetCmd     `cmd:"" help:"Replace the document stored under a key."`
	Delete  StateDeleteCmd  `cmd:"" help:"Reset a key to its default."`
	History StateHistoryCmd `cmd:"" help:"List earlier revisions of a key."`
	Restore StateRestoreCmd `cmd:"" help:"Restore a key from an earlier revision."`
}

type StateKeysCmd struct{}

func (c *StateKeysCmd) Run(ctx *cli.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tBYTES")
	for _, key := range constants.AllKeys {
		v, err := ctx.Store.Get(key)
		switch {
		case errors.Is(err, storage.ErrKeyNotFound):
			fmt.Fprintf(w, "%s\t-\n", key)
		case err != nil:
			return err
		default:
			fmt.Fprintf(w, "%s\t%d\n", key, len(v))
		}
	}
	return w.Flush()
}

type StateGetCmd struct {
	Key string `arg:"" help:"Storage key."`
}

func (c *StateGetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	raw, err := tr.Raw(c.Key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("nothing stored under %q", c.Key)
	}
	if err != nil {
		return err
	}
	return cli.PrintJSON(json.RawMessage(raw))
}

type StateSetCmd struct {
	Key   string `arg:"" help:"Storage key."`
	Value string `arg:"" help:"JSON document, or - to read stdin."`
}

func (c *StateSetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	value := []byte(c.Value)
	if c.Value == "-" {
		var doc json.RawMessage
		if err := json.NewDecoder(os.Stdin).Decode(&doc); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		value = doc
	}

	ctx.PerformAutomaticBackup()
	if err := tr.SetRaw(c.Key, value); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", c.Key)
	return nil
}

type StateDeleteCmd struct {
	Key string `arg:"" help:"Storage key."`
}

func (c *StateDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := tr.DeleteRaw(c.Key); err != nil {
		return err
	}
	fmt.Printf("Reset %s\n", c.Key)
	return nil
}

func historian(ctx *cli.Context) (storage.Historian, error) {
	h, ok := ctx.Store.(storage.Historian)
	if !ok {
		return nil, fmt.Errorf("revision history requires SQL storage")
	}
	return h, nil
}

type StateHistoryCmd struct {
	Key   string `arg:"" help:"Storage key."`
	Limit int    `short:"n" default:"10" help:"Maximum revisions to show."`
}

func (c *StateHistoryCmd) Run(ctx *cli.Context) error {
	h, err := historian(ctx)
	if err != nil {
		return err
	}
	revs, err := h.History(c.Key, c.Limit)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		fmt.Printf("No earlier revisions of %s.\n", c.Key)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHANGED\tBYTES")
	for _, r := range revs {
		fmt.Fprintf(w, "%d\t%s\t%d\n", r.ID, r.ChangedAt.Local().Format("2006-01-02 15:04:05"), len(r.Value))
	}
	return w.Flush()
}

type StateRestoreCmd struct {
	ID int64 `arg:"" help:"Revision id from 'state history'."`
}

func (c *StateRestoreCmd) Run(ctx *cli.Context) error {
	h, err := historian(ctx)
	if err != nil {
		return err
	}
	rev, err := h.Revision(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find revision: %w", err)
	}
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.SetRaw(rev.Key, []byte(rev.Value)); err != nil {
		return fmt.Errorf("failed to restore %s: %w", rev.Key, err)
	}
	fmt.Printf("Restored %s from revision %d\n", rev.Key, rev.ID)
	return nil
}
