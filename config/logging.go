/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import "github.com/liamsdat/LabXtract/logging"

var logger = logging.Logger(logging.SourceConfig)
