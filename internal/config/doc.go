// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates go-brainstorm configuration.
//
// Configuration is assembled from three sources. Earlier sources take
// precedence; a later source only fills fields that are still zero:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (-c / -config / CONFIG)
//
// [GetStructuredConfig] returns the full view used by the server;
// [GetClientConfig] projects the subset the terminal client needs.
package config
