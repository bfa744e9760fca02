package domain

import (
	"context"

	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain/notification/event"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/xcontext"
)

// publishEvent delivers a lifecycle event through the notification topic.
// It always runs after the transaction committed; a delivery failure is
// logged and dropped, it can never roll back a committed mutation.
func publishEvent(ctx context.Context, publisher pubsub.Publisher, to string, ev event.Event) {
	b, err := event.New(ev, event.Metadata{To: to}).Marshal()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", ev.Op(), err)
		return
	}

	err = publisher.Publish(ctx, common.NotificationTopic, &pubsub.Pack{Key: []byte(to), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event: %v", ev.Op(), err)
	}
}

// commitDBTransaction commits and translates a serialization conflict into
// the retryable ConflictRetry code. All other commit failures are terminal.
func commitDBTransaction(ctx context.Context) error {
	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		if common.IsRetryableDBError(err) {
			return errorx.New(errorx.ConflictRetry, "Too much contention, please retry")
		}

		return errorx.Unknown
	}

	return nil
}

func isConflictRetry(err error) bool {
	errx, ok := err.(errorx.Error)
	return ok && errx.Code == errorx.ConflictRetry
}
