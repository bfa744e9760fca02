package domain

import (
	"context"
	"errors"

	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const recentTransactionLimit = 20

type WalletDomain interface {
	Get(ctx context.Context, req *model.GetWalletRequest) (*model.GetWalletResponse, error)
}

type walletDomain struct {
	userRepo   repository.UserRepository
	goldTxRepo repository.GoldTransactionRepository
	balance    *common.BalanceCalculator
}

func NewWalletDomain(
	userRepo repository.UserRepository,
	goldTxRepo repository.GoldTransactionRepository,
	balance *common.BalanceCalculator,
) *walletDomain {
	return &walletDomain{
		userRepo:   userRepo,
		goldTxRepo: goldTxRepo,
		balance:    balance,
	}
}

// Get reads the caller's balance. Locked and available are derived, never
// stored, so this view is consistent with what bid admission would see.
func (d *walletDomain) Get(
	ctx context.Context, req *model.GetWalletRequest,
) (*model.GetWalletResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	locked, err := d.balance.LockedGold(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute locked gold: %v", err)
		return nil, errorx.Unknown
	}

	transactions, err := d.goldTxRepo.GetByUserID(ctx, userID, recentTransactionLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get gold transactions: %v", err)
		return nil, errorx.Unknown
	}

	clientTxs := make([]model.GoldTransaction, 0, len(transactions))
	for i := range transactions {
		clientTxs = append(clientTxs, model.ConvertGoldTransaction(&transactions[i]))
	}

	return &model.GetWalletResponse{
		Gold:               user.Gold,
		Locked:             locked,
		Available:          user.Gold - locked,
		RecentTransactions: clientTxs,
	}, nil
}
