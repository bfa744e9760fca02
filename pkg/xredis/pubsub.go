package xredis

import (
	"context"
	"encoding/json"

	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type publisher struct {
	redisClient *redis.Client
}

func NewPublisher(redisClient *redis.Client) *publisher {
	return &publisher{redisClient: redisClient}
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	b, err := json.Marshal(pack)
	if err != nil {
		return err
	}

	return p.redisClient.Publish(ctx, topic, b).Err()
}

type subscriber struct {
	redisClient *redis.Client
	topics      []string
	handler     pubsub.SubscribeHandler

	redisPubsub *redis.PubSub
}

func NewSubscriber(
	redisClient *redis.Client,
	handler pubsub.SubscribeHandler,
	topics ...string,
) *subscriber {
	return &subscriber{
		redisClient: redisClient,
		topics:      topics,
		handler:     handler,
	}
}

func (s *subscriber) Subscribe(ctx context.Context) {
	s.redisPubsub = s.redisClient.Subscribe(ctx, s.topics...)
	ch := s.redisPubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var pack pubsub.Pack
			if err := json.Unmarshal([]byte(msg.Payload), &pack); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot unmarshal pack: %v", err)
				continue
			}

			s.handler(ctx, msg.Channel, &pack)
		}
	}
}

func (s *subscriber) Stop(ctx context.Context) error {
	if s.redisPubsub == nil {
		return nil
	}

	return s.redisPubsub.Close()
}
