package api

import "encoding/json"

// EventType тип события, рассылаемого сервером по WebSocket
type EventType string

// События push-канала
const (
	EventCandidateCreated EventType = "candidate_created"
	EventCandidateUpdated EventType = "candidate_updated"
	EventCandidateDeleted EventType = "candidate_deleted"
	EventPartyCreated     EventType = "party_created"
	EventPartyUpdated     EventType = "party_updated"
	EventPartyDeleted     EventType = "party_deleted"
	EventResultUpdated    EventType = "result_updated"
)

// Event конверт WebSocket сообщения
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
