package domain

import "time"

// ChatRequest is the body of POST /api/chat. The agent id travels as a string.
type ChatRequest struct {
	AgentID string `json:"agent_id"`
	Query   string `json:"query"`
}

// ChatReply is the backend's answer to a chat request.
type ChatReply struct {
	Response string `json:"response"`
}

// ErrorBody is the JSON error envelope returned by the backend.
type ErrorBody struct {
	Error string `json:"error"`
}

// HistoryEntry is one exchange from GET /api/agent/{id}/history.
type HistoryEntry struct {
	UserMessage   string `json:"user_message"`
	AgentResponse string `json:"agent_response"`
	Timestamp     string `json:"timestamp"`
}

// Time parses the SQLite timestamp. The zero time is returned when the
// backend sent something unparseable.
func (h HistoryEntry) Time() time.Time {
	return parseSQLiteTime(h.Timestamp)
}

func parseSQLiteTime(s string) time.Time {
	t, err := time.ParseInLocation(time.DateTime, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
