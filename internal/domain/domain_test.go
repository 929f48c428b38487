package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoAgents(t *testing.T) {
	agents := DemoAgents()
	require.Len(t, agents, 1)
	assert.Equal(t, Agent{ID: 1, Name: "Demo Agent", Description: "Test agent for development"}, agents[0])

	// Callers may mutate their copy without affecting later calls.
	agents[0].Name = "changed"
	assert.Equal(t, "Demo Agent", DemoAgents()[0].Name)
}

func TestDemoAgentsJSON(t *testing.T) {
	data, err := json.Marshal(DemoAgents())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Demo Agent","description":"Test agent for development"}]`, string(data))
}

func TestChatRequestJSON(t *testing.T) {
	data, err := json.Marshal(ChatRequest{AgentID: "5", Query: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"agent_id":"5","query":"hi"}`, string(data))
}

func TestHistoryEntryTime(t *testing.T) {
	h := HistoryEntry{Timestamp: "2026-03-04 05:06:07"}
	assert.Equal(t, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC), h.Time())

	assert.True(t, HistoryEntry{Timestamp: "yesterday"}.Time().IsZero())
}

func TestDocumentUploadedTime(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"filename":"notes.md","uploaded_at":"2026-01-02 03:04:05"}`), &d))
	assert.Equal(t, int64(3), d.ID)
	assert.Equal(t, "notes.md", d.Filename)
	assert.Equal(t, 2026, d.UploadedTime().Year())
}
