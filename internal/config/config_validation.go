// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// validate checks that the final merged [StructuredConfig] carries every
// value the server cannot start without. Errors for all missing groups are
// joined so a single startup reports every problem.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.PasswordHashKey == "" || cfg.App.TokenSignKey == "" {
		errs = append(errs, ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if cfg.Mail.SMTPHost != "" && cfg.Mail.From == "" {
		errs = append(errs, ErrInvalidMailConfigs)
	}

	return errors.Join(errs...)
}
