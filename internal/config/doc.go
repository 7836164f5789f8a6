// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config loads the runtime configuration from environment variables and
// the description of the daily ELT job from YAML files.
package config
