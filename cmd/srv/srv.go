package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/raidpot-lab/backend/config"
	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain"
	"github.com/raidpot-lab/backend/internal/domain/countdown"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/authenticator"
	"github.com/raidpot-lab/backend/pkg/logger"
	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/router"
	"github.com/raidpot-lab/backend/pkg/ws"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"github.com/raidpot-lab/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	// ctx is the boot context. It carries the db handle, configs, and logger
	// into background callbacks that outlive any request.
	ctx context.Context

	configs     config.Configs
	logger      logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber
	tokenEngine *authenticator.TokenEngine

	userRepo        repository.UserRepository
	raidRepo        repository.RaidRepository
	participantRepo repository.ParticipantRepository
	itemRepo        repository.AuctionItemRepository
	bidRepo         repository.BidRepository
	preAuctionRepo  repository.PreAuctionRepository
	goldTxRepo      repository.GoldTransactionRepository

	countdowns *countdown.Registry
	hub        *ws.Hub

	auctionDomain      domain.AuctionDomain
	settlementEngine   domain.SettlementEngine
	distributionDomain domain.DistributionDomain
	preAuctionDomain   domain.PreAuctionDomain
	recoveryDomain     domain.RecoveryDomain
	walletDomain       domain.WalletDomain
	proxyDomain        domain.ProxyDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.configs = config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "raidpot"),
			User:     getEnv("MYSQL_USER", "raidpot"),
			Password: getEnv("MYSQL_PASSWORD", "raidpot"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", "localhost"),
			Port: getEnv("API_PORT", "8080"),
		},
		WsProxyServer: config.ServerConfigs{
			Host: getEnv("WS_PROXY_HOST", "localhost"),
			Port: getEnv("WS_PROXY_PORT", "8081"),
		},
		Auth: config.AuthConfigs{
			TokenSecret:     getEnv("TOKEN_SECRET", "token_secret"),
			TokenExpiration: getEnvAsDuration("TOKEN_EXPIRATION", time.Hour*24),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Auction: config.AuctionConfigs{
			MaxBid:             getEnvAsInt("AUCTION_MAX_BID", 1_000_000_000),
			DefaultDuration:    getEnvAsDuration("AUCTION_DEFAULT_DURATION", 60*time.Second),
			MinDuration:        getEnvAsDuration("AUCTION_MIN_DURATION", 10*time.Second),
			MaxDuration:        getEnvAsDuration("AUCTION_MAX_DURATION", 10*time.Minute),
			TickInterval:       getEnvAsDuration("AUCTION_TICK_INTERVAL", time.Second),
			EndingSoonBand:     getEnvAsDuration("AUCTION_ENDING_SOON_BAND", 10*time.Second),
			AntiSnipeThreshold: getEnvAsDuration("AUCTION_ANTI_SNIPE_THRESHOLD", 10*time.Second),
			AntiSnipeWindow:    getEnvAsDuration("AUCTION_ANTI_SNIPE_WINDOW", 15*time.Second),
			LeaderCutPercent:   getEnvAsInt("AUCTION_LEADER_CUT_PERCENT", 0),
			BidTxTimeout:       getEnvAsDuration("AUCTION_BID_TX_TIMEOUT", 5*time.Second),
			SettleTxTimeout:    getEnvAsDuration("AUCTION_SETTLE_TX_TIMEOUT", 10*time.Second),
			PayoutTxTimeout:    getEnvAsDuration("AUCTION_PAYOUT_TX_TIMEOUT", 30*time.Second),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadContext() {
	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, s.db)
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	s.ctx = ctx
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.publisher = xredis.NewPublisher(s.redisClient)
}

func (s *srv) loadAuth() {
	s.tokenEngine = authenticator.NewTokenEngine(s.configs.Auth.TokenSecret)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.raidRepo = repository.NewRaidRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.itemRepo = repository.NewAuctionItemRepository()
	s.bidRepo = repository.NewBidRepository()
	s.preAuctionRepo = repository.NewPreAuctionRepository()
	s.goldTxRepo = repository.NewGoldTransactionRepository()
}

func (s *srv) loadDomains() {
	roleVerifier := common.NewRaidRoleVerifier(s.participantRepo)
	balance := common.NewBalanceCalculator(s.bidRepo, s.preAuctionRepo)

	s.countdowns = countdown.NewRegistry(
		s.ctx, s.configs.Auction.TickInterval, s.configs.Auction.EndingSoonBand)

	s.settlementEngine = domain.NewSettlementEngine(
		s.itemRepo, s.raidRepo, s.userRepo, s.goldTxRepo, s.publisher)
	s.auctionDomain = domain.NewAuctionDomain(
		s.itemRepo, s.bidRepo, s.raidRepo, s.userRepo, s.goldTxRepo,
		roleVerifier, balance, s.settlementEngine, s.countdowns, s.publisher)
	s.distributionDomain = domain.NewDistributionDomain(
		s.raidRepo, s.participantRepo, s.itemRepo, s.bidRepo, s.userRepo,
		s.goldTxRepo, roleVerifier, s.countdowns, s.publisher)
	s.preAuctionDomain = domain.NewPreAuctionDomain(
		s.preAuctionRepo, s.raidRepo, s.userRepo, s.goldTxRepo,
		roleVerifier, balance, s.publisher)
	s.recoveryDomain = domain.NewRecoveryDomain(
		s.itemRepo, s.raidRepo, s.preAuctionRepo,
		s.auctionDomain, s.settlementEngine, s.publisher)
	s.walletDomain = domain.NewWalletDomain(s.userRepo, s.goldTxRepo, balance)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		panic(err)
	}

	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return parsed
}
