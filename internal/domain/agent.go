// Package domain holds the wire shapes exchanged with the SAS Agent backend.
package domain

// Agent is a backend-managed chat agent.
type Agent struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateAgentRequest is the body of POST /api/create-agent.
type CreateAgentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateAgentResult is the backend's answer to a successful creation.
type CreateAgentResult struct {
	Message string `json:"message"`
	AgentID int64  `json:"agent_id"`
}

// DemoAgents is the placeholder listing used when the agents endpoint is
// unavailable. A fresh slice is returned on every call.
func DemoAgents() []Agent {
	return []Agent{
		{ID: 1, Name: "Demo Agent", Description: "Test agent for development"},
	}
}
