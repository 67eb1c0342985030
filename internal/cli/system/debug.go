package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/storage"
)

type DebugCmd struct {
	Paths DebugPathsCmd `cmd:"" help:"Show database, config and log paths."`
	Dump  DebugDumpCmd  `cmd:"" help:"Dump every stored document as JSON."`
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	return cli.PrintJSON(map[string]string{
		"database": ctx.Store.GetConfigPath(),
		"config":   ctx.ConfigFile,
		"log":      logger.Path(),
		"backups":  backupDir(ctx),
	})
}

func backupDir(ctx *cli.Context) string {
	if mgr := ctx.BackupManager(); mgr != nil {
		return mgr.Dir()
	}
	return ""
}

type DebugDumpCmd struct {
	Key string `arg:"" optional:"" help:"Only dump this key."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	keys := []string{cmd.Key}
	if cmd.Key == "" {
		all, err := ctx.Store.Keys()
		if err != nil {
			return err
		}
		keys = all
	}

	docs := map[string]json.RawMessage{}
	for _, k := range keys {
		v, err := ctx.Store.Get(k)
		if errors.Is(err, storage.ErrKeyNotFound) {
			return fmt.Errorf("nothing stored under %q", k)
		}
		if err != nil {
			return err
		}
		if !json.Valid(v) {
			// Show corrupt documents as strings rather than failing the dump.
			v, _ = json.Marshal(string(v))
		}
		docs[k] = v
	}
	return cli.PrintJSON(docs)
}
