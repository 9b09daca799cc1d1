// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package rcsb fetches structures from a public structural-biology
// archive over HTTPS. The client downloads gzipped PDB entries and
// parses them with lib/pdb; it implements viewer.StructureLoader.
//
// There is no retry logic: a failed fetch is fatal to session
// initialization by design, and the caller surfaces it as a failure
// state.
package rcsb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/version"
)

// DefaultBaseURL is the RCSB download endpoint.
const DefaultBaseURL = "https://files.rcsb.org"

// maxEntrySize bounds the decompressed entry read: 32 MiB. Exists
// solely so a misbehaving server cannot exhaust memory; real PDB
// entries are orders of magnitude smaller.
const maxEntrySize int64 = 32 << 20

// maxErrorBody bounds how much of an error response is quoted in the
// returned error.
const maxErrorBody int64 = 4 << 10

// idPattern is the archive identifier format: a digit followed by
// three alphanumerics, e.g. "2H8R".
var idPattern = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)

// ValidateID reports whether id is a well-formed archive identifier.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid structure identifier %q: want a digit followed by three alphanumerics", id)
	}
	return nil
}

// Client fetches and parses archive entries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient returns a Client against the given base URL (empty means
// DefaultBaseURL).
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// Load fetches the gzipped PDB entry for id, decompresses it, and
// parses it into a Structure. Implements viewer.StructureLoader.
func (c *Client) Load(ctx context.Context, id string) (*pdb.Structure, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	id = strings.ToUpper(id)

	url := fmt.Sprintf("%s/download/%s.pdb.gz", c.baseURL, id)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", id, err)
	}
	request.Header.Set("User-Agent", "varscope/"+version.Short())

	start := time.Now()
	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", id, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("structure %s not found in the archive", id)
	}
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, fmt.Errorf("fetching %s: %s: %s",
			id, response.Status, strings.TrimSpace(string(body)))
	}

	decompressor, err := gzip.NewReader(response.Body)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", id, err)
	}
	defer decompressor.Close()

	structure, err := pdb.Parse(io.LimitReader(decompressor, maxEntrySize))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", id, err)
	}
	if structure.ID == "" {
		structure.ID = id
	}

	c.logger.Info("structure fetched",
		"structure", id,
		"atoms", structure.AtomCount(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return structure, nil
}
