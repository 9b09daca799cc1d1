// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package structcache caches parsed structures on disk so repeat
// sessions against the same entry skip the network fetch and the
// columnar parse.
//
// The cache wraps any Loader. On Load it derives a key from the
// structure ID and the on-disk format version (BLAKE3 keyed hash with
// an ASCII domain-separation key), and looks for a single file named
// by that key under the cache directory. A hit decodes the file; a
// miss, a corrupt entry, or an entry written by an older format
// version falls through to the inner loader and rewrites the file.
// Cache failures are never fatal — the inner loader's result is
// authoritative.
//
// Entries are deterministic CBOR (lib/codec) compressed with a tagged
// scheme: LZ4 by default, raw bytes when compression does not pay,
// zstd accepted on read.
package structcache
