package main

import (
	"fmt"
	"net/http"

	"github.com/raidpot-lab/backend/internal/middleware"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/raidpot-lab/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadContext()
	server.loadRedis()
	server.loadAuth()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	// Reconcile the store before serving: settle what expired while the
	// process was down and restart the countdowns of live auctions.
	resp, err := s.recoveryDomain.Recover(s.ctx, &model.RecoverRequest{})
	if err != nil {
		return err
	}

	s.logger.Infof("Recovery done: resumed=%d settled=%d failed=%d ended_pre_auction_items=%d",
		resp.ResumedAuctions, resp.SettledAuctions, resp.FailedAuctions, resp.EndedPreAuctionItems)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)

	// Every API needs authentication with an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate(s.tokenEngine))
	{
		// Auction API
		router.POST(authRouter, "/startAuction", s.auctionDomain.Start)
		router.POST(authRouter, "/placeBid", s.auctionDomain.PlaceBid)
		router.POST(authRouter, "/stopAuction", s.auctionDomain.Stop)
		router.POST(authRouter, "/skipAuction", s.auctionDomain.Skip)
		router.POST(authRouter, "/reAuction", s.auctionDomain.ReAuction)
		router.GET(authRouter, "/getAuction", s.auctionDomain.Get)

		// Pre-auction API
		router.POST(authRouter, "/placePreBid", s.preAuctionDomain.PlaceBid)
		router.POST(authRouter, "/endPreAuctions", s.preAuctionDomain.End)
		router.POST(authRouter, "/claimPreAuction", s.preAuctionDomain.Claim)
		router.POST(authRouter, "/unclaimPreAuction", s.preAuctionDomain.Unclaim)

		// Distribution API
		router.GET(authRouter, "/previewDistribution", s.distributionDomain.Preview)
		router.POST(authRouter, "/distributePot", s.distributionDomain.Distribute)
		router.POST(authRouter, "/cancelRaid", s.distributionDomain.CancelRaid)

		// Wallet API
		router.GET(authRouter, "/getWallet", s.walletDomain.Get)
	}
}
