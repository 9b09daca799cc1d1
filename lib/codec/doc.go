// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Varscope's standard CBOR encoding configuration.
//
// Varscope uses two serialization formats with a clear boundary:
//
//   - JSON (and JSONC for hand-edited input) for external interfaces:
//     variant dataset files, report output, and CLI --format=json.
//   - CBOR for internal storage: cached parsed structures written by
//     lib/structcache.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// fxamacker/cbor v2 reads `json` tags as fallback when `cbor` tags are
// absent, so types shared between the dataset format (JSON) and the
// cache (CBOR) need only a single `json` tag for field naming and
// omitempty in both formats.
package codec
