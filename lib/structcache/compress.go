// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package structcache

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the compression algorithm used for a cache
// entry payload. The tag is stored in the entry header (1 byte). These
// values are format constants — changing them breaks existing caches.
type CompressionTag uint8

const (
	// CompressionNone indicates an uncompressed payload. Written when
	// the compressed output would not be smaller than the input.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 indicates LZ4 block compression. The default for
	// new entries: parsed structures are mostly repeated field names
	// and coordinates, and LZ4 decodes fast enough that a cache hit
	// stays well under the parse it replaces.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd indicates zstd compression at the default level.
	// Accepted on read so caches written with a zstd default remain
	// loadable; new entries are not written with it.
	CompressionZstd CompressionTag = 2
)

// String returns the human-readable name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// errIncompressible is returned by compressPayload when the compressed
// output is not smaller than the input. The caller falls back to
// CompressionNone.
var errIncompressible = fmt.Errorf("data is incompressible")

// compressPayload compresses data with LZ4 block compression.
func compressPayload(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, bound)

	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	// CompressBlock returns 0 when it determines the data is
	// incompressible.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}

	return destination[:written], nil
}

// decompressPayload decompresses a payload written with the given tag.
// The uncompressedSize must match the original data length exactly —
// this is verified and a mismatch returns an error.
func decompressPayload(compressed []byte, tag CompressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match expected %d",
				len(compressed), uncompressedSize)
		}
		return compressed, nil

	case CompressionLZ4:
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(compressed, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
		}
		return destination, nil

	case CompressionZstd:
		destination := make([]byte, 0, uncompressedSize)
		result, err := zstdDecoder.DecodeAll(compressed, destination)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != uncompressedSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// zstdDecoder is reused across calls to avoid repeated initialization
// overhead. zstd.Decoder is safe for concurrent use.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("structcache: zstd decoder initialization failed: " + err.Error())
	}
}
