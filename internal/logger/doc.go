// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps the underlying logging stack behind a consistent interface.
// Every Logger built here shares the same output layout, can emit at a level chosen
// at call time and travels through the program via context helpers.
package logger
