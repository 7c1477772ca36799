/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/liamsdat/LabXtract/config"
)

const defaultConfigPath = "labxtract.yaml"

var CmdInitConfig = &cli.Command{
	Name:      "init-config",
	Usage:     "Write the default configuration",
	ArgsUsage: "[path]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Overwrite an existing file",
		},
	},
	Action: initConfig,
}

func initConfig(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		path = defaultConfigPath
	}

	if err := config.WriteDefault(path, cmd.Bool("force")); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "Wrote %s\n", path)
	return nil
}
