// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for varscope
// sessions.
//
// Configuration is loaded from a single file merged over built-in
// defaults via [LoadFile]. Decoding is strict: unknown keys are
// errors, so a typoed section name fails loudly instead of silently
// falling back to a default. There is no environment-variable layer —
// command-line flags are the only override, applied by the commands
// after the file is loaded.
//
// A minimal file:
//
//	structure:
//	  id: 2H8R
//	dataset:
//	  path: variants.jsonc
//
// Everything else has a default. [Config.Validate] reports every
// problem at once rather than stopping at the first.
//
// Key exports:
//
//   - [Config] -- master struct with Structure, Dataset, Display,
//     Measurement, Logging
//   - [Default] -- returns a Config with session defaults
//   - [LoadFile] -- the entry point for loading a file
package config
