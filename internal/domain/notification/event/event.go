package event

import "encoding/json"

type Event interface {
	Op() string
}

// Metadata addresses the event to a raid room or a user-private channel.
type Metadata struct {
	To string `json:"to"`
}

type EventRequest struct {
	Op       string   `json:"o"`
	Data     any      `json:"d"`
	Metadata Metadata `json:"m"`
}

func New(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		Op:       ev.Op(),
		Data:     ev,
		Metadata: metadata,
	}
}

func (e *EventRequest) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
