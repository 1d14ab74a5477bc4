// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/distiller/configs"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "options",
		Description: "Show the configured extraction options",
		ExecFunc:    runOptions,
	})
}

func runOptions(_ context.Context, args []string) error {
	var flags appFlags
	fs := flags.Flags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	fmt.Fprint(stdout, configs.Config.Distill.Options.String()) //nolint:errcheck
	if configs.Config.Distill.Base != "" {
		fmt.Fprintf(stdout, "  %-26s: %s\n", "base", configs.Config.Distill.Base) //nolint:errcheck
	}
	return nil
}
