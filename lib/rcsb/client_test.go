// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package rcsb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func atomLine(serial int, name, resName, chain string, resSeq int, x, y, z float64, element string) string {
	if len(name) < 4 {
		name = " " + name
	}
	return fmt.Sprintf("%-6s%5d %-4s%1s%-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		"ATOM", serial, name, " ", resName, chain, resSeq, x, y, z, 1.00, 20.00, element)
}

func entryText() string {
	lines := []string{
		"HEADER    TRANSCRIPTION/DNA                       12-OCT-06   2H8R",
		atomLine(1, "CA", "GLY", "A", 176, 0, 0, 0, "C"),
		atomLine(2, "P", "DA", "B", 5, 10, 2, 0, "P"),
	}
	return strings.Join(lines, "\n") + "\n"
}

func gzipped(t *testing.T, text string) []byte {
	t.Helper()
	var builder strings.Builder
	writer := gzip.NewWriter(&builder)
	if _, err := writer.Write([]byte(text)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return []byte(builder.String())
}

func TestLoadFetchesAndParses(t *testing.T) {
	var requestedPath, userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		userAgent = r.Header.Get("User-Agent")
		w.Write(gzipped(t, entryText()))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	structure, err := client.Load(context.Background(), "2h8r")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if requestedPath != "/download/2H8R.pdb.gz" {
		t.Errorf("path = %q, want uppercase download path", requestedPath)
	}
	if !strings.HasPrefix(userAgent, "varscope/") {
		t.Errorf("User-Agent = %q, want varscope prefix", userAgent)
	}
	if structure.ID != "2H8R" {
		t.Errorf("ID = %q, want 2H8R", structure.ID)
	}
	if got := structure.AtomCount(); got != 2 {
		t.Errorf("atom count = %d, want 2", got)
	}
}

func TestLoadRejectsMalformedID(t *testing.T) {
	client := NewClient("http://unused.invalid", testLogger())
	for _, id := range []string{"", "ABCD", "12", "2H8R2", "2h.r"} {
		if _, err := client.Load(context.Background(), id); err == nil {
			t.Errorf("Load(%q) succeeded, want identifier validation error", id)
		}
	}
}

func TestLoadNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	_, err := client.Load(context.Background(), "9ZZZ")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want not-found error", err)
	}
}

func TestLoadServerErrorQuotesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	_, err := client.Load(context.Background(), "2H8R")
	if err == nil || !strings.Contains(err.Error(), "maintenance window") {
		t.Errorf("err = %v, want quoted body", err)
	}
}

func TestLoadCorruptGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not gzip"))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	if _, err := client.Load(context.Background(), "2H8R"); err == nil {
		t.Error("expected decompression error")
	}
}
