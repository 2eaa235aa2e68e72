package usecase

import (
	"context"

	"joinup/internal/infrastructure/storage"
	"joinup/internal/ws"
)

// ListCache holds the normalized, unfiltered listings.
type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type EventPublisher interface {
	Publish(evt ws.Event)
}

type ImageStore interface {
	PutProfileImage(ctx context.Context, obj storage.Object) (string, error)
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) SetJSON(context.Context, string, any) error         { return nil }
func (noopCache) Delete(context.Context, ...string) error            { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(ws.Event) {}

func cacheOrNoop(c ListCache) ListCache {
	if c == nil {
		return noopCache{}
	}
	return c
}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
