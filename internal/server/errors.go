// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errHTTPNotConfigured is returned when the shop API has no router or no
// listen address to serve on.
var errHTTPNotConfigured = errors.New("shop http server is not configured")
