package services

import (
	"context"
	"testing"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/eventbus"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorkshopTestService(orderRepo *fakeOrderRepo, itemRepo *fakeItemRepo) WorkshopServiceInterface {
	return NewWorkshopService(orderRepo, itemRepo, fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop())
}

func TestSendToWorkshop_SkipsForeignItems(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		findByIDForUpdate: func(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: constants.StatusInProgress}, nil
		},
	}
	itemRepo := &fakeItemRepo{
		sendToWorkshopInTx: func(ctx context.Context, tx pgx.Tx, orderID uint64, itemIDs []uint64) (int64, error) {
			// Из трех запрошенных вещей заказу принадлежат две.
			return 2, nil
		},
	}
	svc := newWorkshopTestService(orderRepo, itemRepo)

	sent, err := svc.SendToWorkshop(context.Background(), 1, 10, staffActor(), dto.SendToWorkshopDTO{ItemIDs: []uint64{1, 2, 999}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), sent, "чужие вещи молча пропускаются, партия не падает")
}

func TestSendToWorkshop_TerminalOrder(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		findByIDForUpdate: func(ctx context.Context, tx pgx.Tx, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: constants.StatusCancelled}, nil
		},
	}
	svc := newWorkshopTestService(orderRepo, &fakeItemRepo{})

	_, err := svc.SendToWorkshop(context.Background(), 1, 10, staffActor(), dto.SendToWorkshopDTO{ItemIDs: []uint64{1}})
	assert.ErrorIs(t, err, apperrors.ErrOrderTerminal)
}

func TestMarkReturned_Success(t *testing.T) {
	var gotTarget constants.ItemStatus
	itemRepo := &fakeItemRepo{
		updateStatusFromWorkshop: func(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, notes *string) (bool, error) {
			gotTarget = target
			return true, nil
		},
	}
	svc := newWorkshopTestService(&fakeOrderRepo{}, itemRepo)

	err := svc.MarkReturned(context.Background(), 1, 42, staffActor(), dto.ReturnItemDTO{})
	require.NoError(t, err)
	assert.Equal(t, constants.ItemStatusWorkshopReturned, gotTarget)
}

func TestReturnToStore_Success(t *testing.T) {
	var gotTarget constants.ItemStatus
	itemRepo := &fakeItemRepo{
		updateStatusFromWorkshop: func(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, notes *string) (bool, error) {
			gotTarget = target
			return true, nil
		},
	}
	svc := newWorkshopTestService(&fakeOrderRepo{}, itemRepo)

	err := svc.ReturnToStore(context.Background(), 1, 42, staffActor(), dto.ReturnItemDTO{})
	require.NoError(t, err)
	assert.Equal(t, constants.ItemStatusReady, gotTarget)
}

func TestMarkReturned_ItemNotAtWorkshop(t *testing.T) {
	itemRepo := &fakeItemRepo{
		updateStatusFromWorkshop: func(ctx context.Context, businessID, itemID uint64, target constants.ItemStatus, notes *string) (bool, error) {
			return false, nil
		},
	}
	svc := newWorkshopTestService(&fakeOrderRepo{}, itemRepo)

	err := svc.MarkReturned(context.Background(), 1, 42, staffActor(), dto.ReturnItemDTO{})
	assert.ErrorIs(t, err, apperrors.ErrItemNotAtWorkshop)
}
