// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package elt runs the daily extract process.
// A run extracts every configured source for the standard period and wraps the whole
// process, and the extraction step inside it, in named timer sections.
package elt
