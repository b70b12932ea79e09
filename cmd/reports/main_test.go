package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel_pms/internal/adapters/genai"
	"hostel_pms/internal/app"
	"hostel_pms/internal/storage/memory"
	mysqlrepo "hostel_pms/internal/storage/mysql"
)

func TestRun_WritesOneFilePerOperation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ai := app.NewAssistant(memory.NewSeeded(), genai.Mock{}, mysqlrepo.Nop{})

	ops := []string{"daily-briefing", " team-performance ", "", "teleport", "business-diagnosis"}
	n, err := run(context.Background(), ai, ops, dir, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, op := range []string{"daily-briefing", "team-performance", "business-diagnosis"} {
		raw, err := os.ReadFile(filepath.Join(dir, op+".json"))
		require.NoError(t, err, op)
		assert.True(t, json.Valid(raw), op)
	}
	_, err = os.Stat(filepath.Join(dir, "teleport.json"))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRun_CancelledContextStopsScheduling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ai := app.NewAssistant(memory.NewSeeded(), genai.Mock{}, mysqlrepo.Nop{})

	n, err := run(ctx, ai, []string{"daily-briefing"}, t.TempDir(), 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
