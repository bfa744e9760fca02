package domain

import (
	"testing"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func participantsOf(specs ...entity.RaidParticipant) []entity.RaidParticipant {
	return specs
}

func Test_computeShares_equal(t *testing.T) {
	raid := &entity.Raid{
		Pot:              1000,
		SplitPolicy:      entity.SplitEqual,
		LeaderID:         "leader",
		LeaderCutPercent: 10,
	}

	participants := participantsOf(
		entity.RaidParticipant{UserID: "leader", Role: entity.RaidRoleLeader},
		entity.RaidParticipant{UserID: "u1", Role: entity.RaidRoleMember},
		entity.RaidParticipant{UserID: "u2", Role: entity.RaidRoleMember},
		entity.RaidParticipant{UserID: "u3", Role: entity.RaidRoleMember},
	)

	shares, retained, err := computeShares(raid, participants)
	require.NoError(t, err)
	require.Equal(t, int64(325), shares["leader"])
	require.Equal(t, int64(225), shares["u1"])
	require.Equal(t, int64(225), shares["u2"])
	require.Equal(t, int64(225), shares["u3"])
	require.Equal(t, int64(0), retained)
}

func Test_computeShares_equal_remainderRetained(t *testing.T) {
	raid := &entity.Raid{
		Pot:         100,
		SplitPolicy: entity.SplitEqual,
		LeaderID:    "leader",
	}

	participants := participantsOf(
		entity.RaidParticipant{UserID: "leader", Role: entity.RaidRoleLeader},
		entity.RaidParticipant{UserID: "u1", Role: entity.RaidRoleMember},
		entity.RaidParticipant{UserID: "u2", Role: entity.RaidRoleMember},
	)

	shares, retained, err := computeShares(raid, participants)
	require.NoError(t, err)
	require.Equal(t, int64(33), shares["leader"])
	require.Equal(t, int64(33), shares["u1"])
	require.Equal(t, int64(33), shares["u2"])
	require.Equal(t, int64(1), retained)
}

func Test_computeShares_custom(t *testing.T) {
	raid := &entity.Raid{Pot: 1000, SplitPolicy: entity.SplitCustom}

	shares, retained, err := computeShares(raid, participantsOf(
		entity.RaidParticipant{UserID: "u1", SharePercent: 50},
		entity.RaidParticipant{UserID: "u2", SharePercent: 30},
	))
	require.NoError(t, err)
	require.Equal(t, int64(500), shares["u1"])
	require.Equal(t, int64(300), shares["u2"])

	// Percents summing below 100 leave the shortfall in the treasury.
	require.Equal(t, int64(200), retained)

	// Percents summing above 100 are rejected.
	_, _, err = computeShares(raid, participantsOf(
		entity.RaidParticipant{UserID: "u1", SharePercent: 70},
		entity.RaidParticipant{UserID: "u2", SharePercent: 40},
	))
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_computeShares_roleWeighted(t *testing.T) {
	raid := &entity.Raid{Pot: 900, SplitPolicy: entity.SplitRoleWeighted}

	shares, retained, err := computeShares(raid, participantsOf(
		entity.RaidParticipant{UserID: "leader", Role: entity.RaidRoleLeader},
		entity.RaidParticipant{UserID: "officer", Role: entity.RaidRoleOfficer},
		entity.RaidParticipant{UserID: "member", Role: entity.RaidRoleMember},
	))
	require.NoError(t, err)

	// Weights 200:150:100 over a total of 450.
	require.Equal(t, int64(400), shares["leader"])
	require.Equal(t, int64(300), shares["officer"])
	require.Equal(t, int64(200), shares["member"])
	require.Equal(t, int64(0), retained)
}

func Test_computeShares_noParticipants(t *testing.T) {
	raid := &entity.Raid{Pot: 100, SplitPolicy: entity.SplitEqual}

	_, _, err := computeShares(raid, nil)
	require.Error(t, err)
	require.Equal(t, errorx.Unavailable, err.(errorx.Error).Code)
}
