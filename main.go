/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/liamsdat/LabXtract/cmd"
)

func main() {
	if err := cmd.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}

	app := &cli.Command{
		Name:  "labxtract",
		Usage: "LabXtract - extract lab test results from spreadsheets",
		Commands: []*cli.Command{
			cmd.CmdParse,
			cmd.CmdAnalyze,
			cmd.CmdValidate,
			cmd.CmdInitConfig,
			cmd.CmdRename,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
