package main

import (
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/model"

	"github.com/urfave/cli/v2"
)

func (s *srv) startRecover(ct *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadContext()
	server.loadRedis()
	server.loadRepos()
	server.loadDomains()

	resp, err := s.recoveryDomain.Recover(s.ctx, &model.RecoverRequest{})
	if err != nil {
		return err
	}

	s.logger.Infof("Recovery done: resumed=%d settled=%d failed=%d ended_pre_auction_items=%d",
		resp.ResumedAuctions, resp.SettledAuctions, resp.FailedAuctions, resp.EndedPreAuctionItems)
	return nil
}

func (s *srv) startMigrate(ct *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadContext()

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	s.logger.Infof("Migration done")
	return nil
}
