/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errInputRequired    = errors.New("at least one input file or directory is required")
	errNoResults        = errors.New("no lab results were extracted")
	errValidationFailed = errors.New("validation found errors")
	errRenameDirectory  = errors.New("rename needs exactly one input directory")
)
