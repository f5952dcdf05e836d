package mq

import (
	"context"
	"encoding/json"
	"log"

	"graintrade/rdx"
)

const eventChannel = "marketplace-events"

// Event is a lightweight domain notification published to Redis pub/sub.
// Consumers (search indexer, mailers) subscribe out of process.
type Event struct {
	Name     string `json:"name"`
	EntityID string `json:"entity_id"`
	UserID   string `json:"user_id,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Emit publishes an event; failures are logged and never surfaced to the
// request path.
func Emit(ctx context.Context, name, entityID, userID, detail string) {
	evt := Event{Name: name, EntityID: entityID, UserID: userID, Detail: detail}

	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[Emit] marshal %s: %v", name, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish %s: %v", name, err)
	}
}

// StartEventLogger drains the event channel and logs everything seen.
// It is the in-repo stand-in for downstream consumers.
func StartEventLogger() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventChannel)
	ch := sub.Channel()

	for msg := range ch {
		var evt Event
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("[EventLogger] unmarshal: %v", err)
			continue
		}
		log.Printf("[EventLogger] %s entity=%s user=%s", evt.Name, evt.EntityID, evt.UserID)
	}
}
