// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills the shop config from APP_*, SERVER_*, STORAGE_* and MAIL_*
// variables plus CONFIG. Unset variables leave their fields zero so that
// flag and JSON sources can still supply them during the merge.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("reading shop config from environment: %w", err)
	}

	return nil
}
