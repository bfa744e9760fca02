package domain

import (
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/errorx"
)

// roleWeights order payouts under the role_weighted policy. A leader earns
// twice a member's share, an officer one and a half.
var roleWeights = map[entity.RaidRoleType]int64{
	entity.RaidRoleLeader:  200,
	entity.RaidRoleOfficer: 150,
	entity.RaidRoleMember:  100,
}

// computeShares resolves the raid's split policy into a per-user payout.
// Shares are floored; the remainder that flooring leaves behind is returned
// as retained and stays with the raid treasury. Participants must already be
// ordered deterministically by the caller.
func computeShares(
	raid *entity.Raid, participants []entity.RaidParticipant,
) (map[string]int64, int64, error) {
	if len(participants) == 0 {
		return nil, 0, errorx.New(errorx.Unavailable, "Raid has no participants")
	}

	switch raid.SplitPolicy {
	case entity.SplitEqual:
		return equalShares(raid, participants)
	case entity.SplitCustom:
		return customShares(raid, participants)
	case entity.SplitRoleWeighted:
		return roleWeightedShares(raid, participants)
	}

	return nil, 0, errorx.New(errorx.BadRequest, "Unknown split policy %s", raid.SplitPolicy)
}

// equalShares takes the leader cut off the top, then splits the remainder
// evenly. The leader receives the cut in addition to a regular share.
func equalShares(
	raid *entity.Raid, participants []entity.RaidParticipant,
) (map[string]int64, int64, error) {
	leaderCut := raid.Pot * raid.LeaderCutPercent / 100
	remaining := raid.Pot - leaderCut
	each := remaining / int64(len(participants))

	shares := make(map[string]int64, len(participants))
	distributed := int64(0)
	for _, p := range participants {
		share := each
		if p.UserID == raid.LeaderID {
			share += leaderCut
		}

		shares[p.UserID] = share
		distributed += share
	}

	return shares, raid.Pot - distributed, nil
}

func customShares(
	raid *entity.Raid, participants []entity.RaidParticipant,
) (map[string]int64, int64, error) {
	total := int64(0)
	for _, p := range participants {
		if p.SharePercent < 0 {
			return nil, 0, errorx.New(errorx.BadRequest,
				"Share percent of %s must not be negative", p.UserID)
		}

		total += p.SharePercent
	}

	if total > 100 {
		return nil, 0, errorx.New(errorx.BadRequest,
			"Share percents sum to %d, must not exceed 100", total)
	}

	shares := make(map[string]int64, len(participants))
	distributed := int64(0)
	for _, p := range participants {
		share := raid.Pot * p.SharePercent / 100
		shares[p.UserID] = share
		distributed += share
	}

	return shares, raid.Pot - distributed, nil
}

func roleWeightedShares(
	raid *entity.Raid, participants []entity.RaidParticipant,
) (map[string]int64, int64, error) {
	totalWeight := int64(0)
	for _, p := range participants {
		w, ok := roleWeights[p.Role]
		if !ok {
			return nil, 0, errorx.New(errorx.BadRequest, "Unknown raid role %s", p.Role)
		}

		totalWeight += w
	}

	shares := make(map[string]int64, len(participants))
	distributed := int64(0)
	for _, p := range participants {
		share := raid.Pot * roleWeights[p.Role] / totalWeight
		shares[p.UserID] = share
		distributed += share
	}

	return shares, raid.Pot - distributed, nil
}
