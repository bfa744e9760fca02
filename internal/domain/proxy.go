package domain

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/ws"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ProxyDomain serves the websocket side of the notification pipeline. A
// connection joins its raid room and the user's private channel; events
// published by the api process arrive through the redis subscriber and fan
// out to the hub.
type ProxyDomain interface {
	ServeProxy(ctx context.Context, w http.ResponseWriter, req *http.Request)
	ReceivePack(ctx context.Context, topic string, pack *pubsub.Pack)
}

type proxyDomain struct {
	participantRepo repository.ParticipantRepository
	hub             *ws.Hub
	upgrader        websocket.Upgrader
}

func NewProxyDomain(participantRepo repository.ParticipantRepository, hub *ws.Hub) *proxyDomain {
	return &proxyDomain{
		participantRepo: participantRepo,
		hub:             hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (d *proxyDomain) ServeProxy(ctx context.Context, w http.ResponseWriter, req *http.Request) {
	raidID := req.URL.Query().Get("raid")
	if raidID == "" {
		http.Error(w, "missing raid parameter", http.StatusBadRequest)
		return
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.participantRepo.Get(ctx, raidID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "not a participant of this raid", http.StatusForbidden)
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := d.upgrader.Upgrade(w, req, nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upgrade connection: %v", err)
		return
	}

	client := ws.NewClient(d.hub, conn, common.RaidChannel(raidID), common.UserChannel(userID))
	client.Run()
}

// ReceivePack routes a published pack to the hub channel named by its key.
// It matches pubsub.SubscribeHandler.
func (d *proxyDomain) ReceivePack(ctx context.Context, topic string, pack *pubsub.Pack) {
	d.hub.BroadcastByChannel(string(pack.Key), pack.Msg)
}
