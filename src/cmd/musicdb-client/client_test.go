package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/musicdb/musicdb/src/internal/config"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrintSummaryIdle(t *testing.T) {
	cfg := config.DefaultClientConfig()
	out := captureStdout(t, func() {
		printSummary(cfg, "/music", 1, 2, 3, false)
	})
	assert.Contains(t, out, "musicdb")
	assert.Contains(t, out, "/music")
	assert.Contains(t, out, "1 artists, 2 albums, 3 songs")
	assert.Contains(t, out, cfg.Text.IdleSide1)
}

func TestPrintSummaryPlaying(t *testing.T) {
	cfg := config.DefaultClientConfig()
	out := captureStdout(t, func() {
		printSummary(cfg, "/music", 1, 2, 3, true)
	})
	assert.Contains(t, out, cfg.Text.StatusBar)
}
