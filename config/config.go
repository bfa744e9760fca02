package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database      DatabaseConfigs
	ApiServer     ServerConfigs
	WsProxyServer ServerConfigs
	Auth          AuthConfigs
	Redis         RedisConfigs
	Auction       AuctionConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret     string
	TokenExpiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type AuctionConfigs struct {
	// MaxBid is a ceiling guard against fat-finger input. Bids above it are
	// rejected before any lock is taken.
	MaxBid int64

	DefaultDuration time.Duration
	MinDuration     time.Duration
	MaxDuration     time.Duration

	TickInterval   time.Duration
	EndingSoonBand time.Duration

	AntiSnipeThreshold time.Duration
	AntiSnipeWindow    time.Duration

	LeaderCutPercent int64

	BidTxTimeout    time.Duration
	SettleTxTimeout time.Duration
	PayoutTxTimeout time.Duration
}
