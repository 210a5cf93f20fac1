// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth is the authentication and authorization core: the Argon2id
// credential store ([PasswordHasher]), the bearer token service
// ([TokenService]) and the role guard ([Authorize]).
//
// All secrets are injected at construction; nothing in this package reads
// the environment.
package auth
