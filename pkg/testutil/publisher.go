package testutil

import (
	"context"
	"sync"

	"github.com/raidpot-lab/backend/pkg/pubsub"
)

// MockPublisher records every published pack. Tests can replace PublishFunc
// to inject failures.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mutex sync.Mutex
	packs []*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.packs = append(m.packs, pack)
	return nil
}

func (m *MockPublisher) Packs() []*pubsub.Pack {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	packs := make([]*pubsub.Pack, len(m.packs))
	copy(packs, m.packs)
	return packs
}
