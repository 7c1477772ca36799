/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import "errors"

var (
	errInvalidPatientSource = errors.New("invalid patient source")
	errUnknownRole          = errors.New("unknown column role")
	errInvalidSeparator     = errors.New("separator must be a single character")
)
