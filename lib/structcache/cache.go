// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package structcache

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/varscope/varscope/lib/codec"
	"github.com/varscope/varscope/lib/pdb"
)

// formatVersion is folded into the cache key. Bumping it after a
// change to the Structure encoding makes every old entry a miss
// instead of a decode error.
const formatVersion = 1

// entryHeaderSize is the fixed prefix of every cache file: one
// compression tag byte followed by the uncompressed payload size as a
// little-endian uint32.
const entryHeaderSize = 5

// maxEntryPayload bounds the decoded payload size. Parsed structures
// encode far smaller than their source PDB files, which the archive
// client already caps at 32 MiB.
const maxEntryPayload = 256 << 20

// entryDomainKey is the 32-byte BLAKE3 key for cache entry names.
// Domain separation keeps these hashes distinct from any other keyed
// hashing this module may grow. The byte values are the ASCII encoding
// of the domain name, zero-padded to 32 bytes, so the key is
// inspectable in hex dumps.
var entryDomainKey = [32]byte{
	'v', 'a', 'r', 's', 'c', 'o', 'p', 'e', '.', 's', 't', 'r', 'u', 'c', 't',
	'c', 'a', 'c', 'h', 'e', '.', 'e', 'n', 't', 'r', 'y', 0, 0, 0, 0, 0, 0,
}

// errMiss marks a cache lookup that found no usable entry: the file is
// absent, truncated, or fails to decode. Internal only — Load falls
// through to the inner loader on any miss.
var errMiss = errors.New("cache miss")

// Loader fetches and parses a structure by its archive identifier.
// rcsb.Client implements it; Cache wraps one and implements it too.
type Loader interface {
	Load(ctx context.Context, id string) (*pdb.Structure, error)
}

// Cache is an on-disk structure cache in front of another Loader. One
// file per structure under the cache directory, named by a keyed hash
// of the structure ID and the format version.
type Cache struct {
	dir    string
	inner  Loader
	logger *slog.Logger
}

// New returns a cache storing entries under dir. The directory is
// created on first write, not here, so constructing a cache for a
// session that only hits never touches the filesystem.
func New(dir string, inner Loader, logger *slog.Logger) *Cache {
	return &Cache{dir: dir, inner: inner, logger: logger}
}

// Load returns the cached structure for id if a valid entry exists,
// otherwise delegates to the inner loader and writes the result back.
// Cache read and write failures are logged and otherwise ignored; only
// the inner loader's error is ever returned.
func (c *Cache) Load(ctx context.Context, id string) (*pdb.Structure, error) {
	path := c.entryPath(id)

	structure, err := readEntry(path)
	if err == nil {
		c.logger.Debug("structure cache hit", "id", id, "path", path)
		return structure, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		// A file was there but could not be used. Fall through and
		// let the rewrite below replace it.
		c.logger.Warn("discarding unusable cache entry", "id", id, "path", path, "error", err)
	}

	started := time.Now()
	structure, err = c.inner.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := writeEntry(path, structure); err != nil {
		c.logger.Warn("writing cache entry failed", "id", id, "path", path, "error", err)
	} else {
		c.logger.Debug("structure cached",
			"id", id,
			"path", path,
			"elapsed", time.Since(started).Round(time.Millisecond))
	}
	return structure, nil
}

// Invalidate removes the cache entry for id, if present. Used by
// fetch --force so the next load goes to the archive.
func (c *Cache) Invalidate(id string) error {
	err := os.Remove(c.entryPath(id))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cache entry: %w", err)
	}
	return nil
}

// Path returns the cache file path a structure ID maps to, whether or
// not an entry exists there yet.
func (c *Cache) Path(id string) string {
	return c.entryPath(id)
}

// entryPath returns the cache file path for a structure ID. IDs are
// case-insensitive in the archive, so the key is computed over the
// uppercased form.
func (c *Cache) entryPath(id string) string {
	hasher, err := blake3.NewKeyed(entryDomainKey[:])
	if err != nil {
		panic("structcache: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	fmt.Fprintf(hasher, "%s\x00v%d", strings.ToUpper(id), formatVersion)
	digest := hasher.Sum(nil)
	return filepath.Join(c.dir, hex.EncodeToString(digest)+".vsc")
}

// readEntry loads and decodes one cache file. Every failure mode is
// wrapped in errMiss so the caller can treat them uniformly.
func readEntry(path string) (*pdb.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errMiss, err)
	}
	if len(data) < entryHeaderSize {
		return nil, fmt.Errorf("%w: entry truncated at %d bytes", errMiss, len(data))
	}

	tag := CompressionTag(data[0])
	uncompressedSize := int(binary.LittleEndian.Uint32(data[1:entryHeaderSize]))
	// A corrupt header must not drive a giant allocation.
	if uncompressedSize > maxEntryPayload {
		return nil, fmt.Errorf("%w: entry declares %d byte payload", errMiss, uncompressedSize)
	}

	payload, err := decompressPayload(data[entryHeaderSize:], tag, uncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errMiss, err)
	}

	var structure pdb.Structure
	if err := codec.Unmarshal(payload, &structure); err != nil {
		return nil, fmt.Errorf("%w: decoding entry: %w", errMiss, err)
	}
	return &structure, nil
}

// writeEntry encodes and writes one cache file. The write goes through
// a temporary file in the same directory followed by a rename, so a
// crash never leaves a half-written entry behind.
func writeEntry(path string, structure *pdb.Structure) error {
	payload, err := codec.Marshal(structure)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}

	tag := CompressionLZ4
	compressed, err := compressPayload(payload)
	if errors.Is(err, errIncompressible) {
		tag = CompressionNone
		compressed = payload
	} else if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	entry := make([]byte, entryHeaderSize, entryHeaderSize+len(compressed))
	entry[0] = byte(tag)
	binary.LittleEndian.PutUint32(entry[1:entryHeaderSize], uint32(len(payload)))
	entry = append(entry, compressed...)

	temp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return fmt.Errorf("creating temporary entry: %w", err)
	}
	if _, err := temp.Write(entry); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return fmt.Errorf("writing entry: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return fmt.Errorf("closing entry: %w", err)
	}
	if err := os.Rename(temp.Name(), path); err != nil {
		os.Remove(temp.Name())
		return fmt.Errorf("installing entry: %w", err)
	}
	return nil
}
