package testutil

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/repository"
)

// SampleUser creates a user with randomized fields. Non-zero fields of init
// overwrite the sample before it is persisted.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
		Gold: 1000,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleRaid(ctx context.Context, init *entity.Raid) (entity.Raid, error) {
	raidRepo := repository.NewRaidRepository()

	sample := &entity.Raid{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        uuid.NewString(),
		Status:      entity.RaidActive,
		LeaderID:    uuid.NewString(),
		SplitPolicy: entity.SplitEqual,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := raidRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleParticipant(ctx context.Context, init *entity.RaidParticipant) (entity.RaidParticipant, error) {
	participantRepo := repository.NewParticipantRepository()

	sample := &entity.RaidParticipant{
		UserID: uuid.NewString(),
		RaidID: uuid.NewString(),
		Role:   entity.RaidRoleMember,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := participantRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleAuctionItem(ctx context.Context, init *entity.AuctionItem) (entity.AuctionItem, error) {
	itemRepo := repository.NewAuctionItemRepository()

	sample := &entity.AuctionItem{
		Base:         entity.Base{ID: uuid.NewString()},
		RaidID:       uuid.NewString(),
		Name:         uuid.NewString(),
		Status:       entity.AuctionItemPending,
		StartingBid:  100,
		MinIncrement: 10,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := itemRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SamplePreAuctionItem(ctx context.Context, init *entity.PreAuctionItem) (entity.PreAuctionItem, error) {
	preAuctionRepo := repository.NewPreAuctionRepository()

	sample := &entity.PreAuctionItem{
		Base:          entity.Base{ID: uuid.NewString()},
		RaidID:        uuid.NewString(),
		CatalogItemID: uuid.NewString(),
		Name:          uuid.NewString(),
		Status:        entity.PreAuctionItemActive,
		StartingBid:   100,
		MinIncrement:  10,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := preAuctionRepo.CreateItem(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
