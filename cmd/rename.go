/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/liamsdat/LabXtract/extract"
	"github.com/liamsdat/LabXtract/ingest"
	"github.com/liamsdat/LabXtract/lab"
)

const defaultRenamePattern = "{last_name} {first_name} {birth_date}{ext}"

var (
	leftoverPlaceholderRe = regexp.MustCompile(`\{[^}]*\}`)
	unsafeFileNameChars   = strings.NewReplacer("/", " ", "\\", " ", ":", " ", "*", " ", "?", " ", `"`, " ", "<", " ", ">", " ", "|", " ")
)

var CmdRename = &cli.Command{
	Name:      "rename",
	Usage:     "Copy workbooks under names built from the patient they belong to",
	ArgsUsage: "<directory>",
	Flags: []cli.Flag{
		configFlag(),
		verboseFlag(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "renamed",
			Usage:   "Directory the renamed copies are written to",
		},
		&cli.StringFlag{
			Name:    "pattern",
			Aliases: []string{"p"},
			Value:   defaultRenamePattern,
			Usage:   "Name pattern: {last_name}, {first_name}, {middle_name}, {middle_name[0]}, {full_name}, {birth_date}, {ext}",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Only print the new names",
		},
	},
	Action: rename,
}

func rename(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errRenameDirectory
	}

	_, extractor, err := setup(cmd)
	if err != nil {
		return err
	}
	opts := extractor.Options()

	files, err := ingest.Discover(cmd.Args().Slice())
	if err != nil {
		return fmt.Errorf("failed to discover inputs: %w", err)
	}

	outDir := cmd.String("output")
	dryRun := cmd.Bool("dry-run")
	if !dryRun {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out := cmd.Root().Writer
	used := map[string]bool{}
	renamed := 0
	for _, path := range files {
		workbook, err := ingest.ReadFile(path)
		if err != nil {
			appLogger.Error("failed to read file", "path", path, "error", err)
			continue
		}

		identity, ok := workbookIdentity(workbook, opts.MaxRowsToCheck, opts.Now())
		if !ok {
			appLogger.Warn("no patient found", "path", path)
			continue
		}

		name := renderFileName(cmd.String("pattern"), identity, filepath.Ext(path))
		if name == "" {
			appLogger.Warn("pattern produced an empty name", "path", path)
			continue
		}
		target := uniquePath(filepath.Join(outDir, name), used)

		fmt.Fprintf(out, "%s -> %s\n", filepath.Base(path), filepath.Base(target))
		if dryRun {
			renamed++
			continue
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		renamed++
	}

	fmt.Fprintf(out, "Renamed %d of %d files\n", renamed, len(files))
	return nil
}

// workbookIdentity looks in the content first, then the sheet names, then
// the file name.
func workbookIdentity(workbook lab.Workbook, maxRows int, now time.Time) (lab.PatientIdentity, bool) {
	if identity, ok := extract.IdentityFromContent(workbook, maxRows, now); ok {
		return identity, true
	}
	for _, sheet := range workbook.Sheets {
		if identity, ok := lab.IdentityFromSheetName(sheet.Name, now); ok {
			return identity, true
		}
	}
	return lab.IdentityFromFile(workbook.FileName, now)
}

func renderFileName(pattern string, identity lab.PatientIdentity, ext string) string {
	birth := ""
	if identity.BirthDate != nil {
		birth = identity.BirthDate.Format(lab.BirthDateLayout)
	}
	initial := ""
	if r := []rune(identity.MiddleName); len(r) > 0 {
		initial = string(r[0])
	}

	name := strings.NewReplacer(
		"{last_name}", identity.LastName,
		"{first_name}", identity.FirstName,
		"{middle_name[0]}", initial,
		"{middle_name}", identity.MiddleName,
		"{full_name}", identity.FullName,
		"{birth_date}", birth,
		"{ext}", ext,
	).Replace(pattern)
	name = leftoverPlaceholderRe.ReplaceAllString(name, "")
	name = unsafeFileNameChars.Replace(name)
	name = strings.Join(strings.Fields(name), " ")

	// "{birth_date}{ext}" with no birth date leaves "Иванов Иван .xlsx"
	if ext != "" && strings.HasSuffix(name, " "+ext) {
		name = strings.TrimSuffix(name, " "+ext) + ext
	}
	if name == ext {
		return ""
	}
	return name
}

// uniquePath appends " (n)" before the extension until the path is neither
// taken in this run nor present on disk.
func uniquePath(path string, used map[string]bool) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	candidate := path
	for n := 2; ; n++ {
		if _, err := os.Stat(candidate); !used[candidate] && os.IsNotExist(err) {
			break
		}
		candidate = stem + " (" + strconv.Itoa(n) + ")" + ext
	}
	used[candidate] = true
	return candidate
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
