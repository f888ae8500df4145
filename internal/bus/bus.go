package bus

import (
	"context"
	"encoding/json"
	"fmt"
)

type Bus interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close()
}

// PublishJSON marshals v and publishes it on subject.
func PublishJSON(ctx context.Context, b Bus, subject string, v any) error {
	if b == nil {
		return fmt.Errorf("bus not configured")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}
	return b.Publish(ctx, subject, data)
}
