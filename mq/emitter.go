package mq

import (
	"context"
	"encoding/json"
	"log"

	"storageguard/rdx"
)

const updatesChannel = "dashboard-updates"

// Update describes a state change worth pushing to connected dashboards.
type Update struct {
	Kind     string `json:"kind"` // "telemetry" | "summary" | "metrics" | "award"
	FarmerID string `json:"farmer_id,omitempty"`
	Payload  any    `json:"payload,omitempty"`
}

// Emit publishes an update to Redis for the live hub to fan out.
func Emit(ctx context.Context, u Update) {
	data, err := json.Marshal(u)
	if err != nil {
		log.Printf("[Emit] Failed to marshal update: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, updatesChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish update: %v", err)
	}
}

// Subscribe returns a channel of decoded updates. The caller owns the
// lifetime via ctx; the channel closes when ctx is cancelled.
func Subscribe(ctx context.Context) <-chan Update {
	sub := rdx.Conn.Subscribe(ctx, updatesChannel)
	out := make(chan Update)

	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var u Update
				if err := json.Unmarshal([]byte(msg.Payload), &u); err != nil {
					log.Printf("[Subscribe] Failed to parse update: %v", err)
					continue
				}
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
