package main

import (
	"fmt"
	"net/http"

	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain"
	"github.com/raidpot-lab/backend/internal/middleware"
	"github.com/raidpot-lab/backend/pkg/router"
	"github.com/raidpot-lab/backend/pkg/ws"
	"github.com/raidpot-lab/backend/pkg/xredis"

	"github.com/urfave/cli/v2"
)

func (s *srv) startProxy(ct *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadContext()
	server.loadRedis()
	server.loadAuth()
	server.loadRepos()

	s.hub = ws.NewHub()
	go s.hub.Run()

	s.proxyDomain = domain.NewProxyDomain(s.participantRepo, s.hub)

	s.subscriber = xredis.NewSubscriber(
		s.redisClient, s.proxyDomain.ReceivePack, common.NotificationTopic)
	go s.subscriber.Subscribe(s.ctx)

	s.router = router.New(s.db, s.configs, s.logger)
	proxyRouter := s.router.Branch()
	proxyRouter.Before(middleware.Authenticate(s.tokenEngine))
	proxyRouter.Raw("/ws", s.proxyDomain.ServeProxy)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.WsProxyServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting ws proxy on port %s", s.configs.WsProxyServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}
