package entity

import (
	"database/sql"
	"time"

	"github.com/raidpot-lab/backend/pkg/enum"
)

type RaidRoleType string

var (
	RaidRoleLeader  = enum.New(RaidRoleType("leader"))
	RaidRoleOfficer = enum.New(RaidRoleType("officer"))
	RaidRoleMember  = enum.New(RaidRoleType("member"))
)

type RaidParticipant struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	RaidID string `gorm:"primaryKey"`
	Raid   Raid   `gorm:"foreignKey:RaidID"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Role RaidRoleType

	// SharePercent only applies when the raid distributes with the custom
	// split policy.
	SharePercent int64

	PaidAt sql.NullTime
}
