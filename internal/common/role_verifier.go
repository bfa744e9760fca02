package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RaidRoleVerifier answers whether the requesting user holds one of the
// required roles in a raid. The hosting application performs
// authentication; this only checks membership and role.
type RaidRoleVerifier struct {
	participantRepo repository.ParticipantRepository
}

func NewRaidRoleVerifier(participantRepo repository.ParticipantRepository) *RaidRoleVerifier {
	return &RaidRoleVerifier{participantRepo: participantRepo}
}

func (verifier *RaidRoleVerifier) Verify(
	ctx context.Context, raidID string, requiredRoles ...entity.RaidRoleType,
) error {
	userID := xcontext.RequestUserID(ctx)
	participant, err := verifier.participantRepo.Get(ctx, raidID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user is not a participant of this raid")
		}

		return err
	}

	if !slices.Contains(requiredRoles, participant.Role) {
		return fmt.Errorf("user role does not have permission")
	}

	return nil
}
