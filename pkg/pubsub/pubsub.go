package pubsub

import "context"

// Pack is one message on a topic. Key addresses the logical channel the
// payload belongs to (a raid room or a user channel).
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
}

type SubscribeHandler func(ctx context.Context, topic string, pack *Pack)

type Subscriber interface {
	// Subscribe blocks consuming the topic until the context is canceled.
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
