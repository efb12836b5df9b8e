package providers

import (
	"context"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// lifecycle status events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.StatusEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.StatusEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelClaimUpdates is the channel for all claim status changes
	EventChannelClaimUpdates = "claim:updates"

	// EventChannelPreAuthUpdates is the channel for all pre-authorization
	// status changes
	EventChannelPreAuthUpdates = "preauth:updates"

	// EventChannelClaimPrefix is the prefix for claim-specific channels
	EventChannelClaimPrefix = "claim:"
)

// GetClaimChannel returns the channel name for a specific claim
func GetClaimChannel(claimID string) string {
	return EventChannelClaimPrefix + claimID
}
