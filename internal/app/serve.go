// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/distiller/configs"
	"codeberg.org/readeck/distiller/internal/httpclient"
	"codeberg.org/readeck/distiller/internal/metrics"
	"codeberg.org/readeck/distiller/internal/server"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "serve",
		Description: "Start the web form server",
		ExecFunc:    runServe,
	})
}

func runServe(ctx context.Context, args []string) error {
	var flags appFlags
	fs := flags.Flags()
	var host string
	var port int
	fs.StringVar(&host, "host", "", "server host (overrides configuration)")
	fs.IntVar(&port, "port", 0, "server port (overrides configuration)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}
	if host != "" {
		configs.Config.Server.Host = host
	}
	if port > 0 {
		configs.Config.Server.Port = port
	}

	if configs.Config.Server.DebugPages {
		slog.Warn("debug pages are enabled, they expose stack traces and request details")
	}

	s := server.New(httpclient.New(), metrics.New())
	srv := &http.Server{
		Addr: net.JoinHostPort(
			configs.Config.Server.Host,
			strconv.Itoa(configs.Config.Server.Port),
		),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("stopping server")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			fatal("server shutdown", err)
		}
	}()

	if isTerminal(stdout) {
		fmt.Fprintf(stdout, "%sdistiller%s listening on %shttp://%s/%s\n", //nolint:errcheck
			bold, colorReset, colorGreen, srv.Addr, colorReset,
		)
	} else {
		fmt.Fprintf(stdout, "distiller listening on http://%s/\n", srv.Addr) //nolint:errcheck
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
