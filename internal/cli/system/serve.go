package system

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address (defaults to server.addr from the config file)."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Settings().Server.Addr
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	lock := server.LockfileIn(cli.ConfigDir(ctx.Store.GetConfigPath()))
	if err := lock.Acquire(context.Background(), port); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to remove server lockfile", "path", lock.Path(), "error", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(tr, ctx.Assistant(sigCtx))
	logger.Info("Server listening", "addr", ln.Addr().String())
	fmt.Printf("MindCalm API listening on http://%s (Ctrl+C to stop)\n", ln.Addr())

	if err := srv.Serve(sigCtx, ln); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
