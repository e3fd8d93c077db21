package services

import (
	"context"
	"testing"

	"laundry-system/internal/entities"
	"laundry-system/internal/repositories"
	"laundry-system/pkg/constants"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/eventbus"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staffActor() entities.Actor {
	return entities.Actor{Kind: entities.ActorStaff, ID: 7, Name: "Админ"}
}

func newStatusService(orderRepo *fakeOrderRepo, historyRepo *fakeHistoryRepo) OrderStatusServiceInterface {
	return NewOrderStatusService(orderRepo, historyRepo, fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop())
}

func TestApplyTransition_Success(t *testing.T) {
	var casParams repositories.UpdateStatusCASParams
	orderRepo := &fakeOrderRepo{
		updateStatusCAS: func(ctx context.Context, tx pgx.Tx, p repositories.UpdateStatusCASParams) (bool, error) {
			casParams = p
			return true, nil
		},
		findByID: func(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: constants.StatusInProgress}, nil
		},
	}
	historyRepo := &fakeHistoryRepo{}
	svc := newStatusService(orderRepo, historyRepo)

	order, err := svc.ApplyTransition(context.Background(), TransitionParams{
		BusinessID: 1,
		OrderID:    10,
		Expected:   constants.StatusPickup,
		Target:     constants.StatusInProgress,
		Actor:      staffActor(),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, order.Status)

	assert.Equal(t, constants.StatusPickup, casParams.Expected)
	assert.Equal(t, constants.StatusInProgress, casParams.Target)

	require.Len(t, historyRepo.created, 1, "переход должен оставить ровно одну строку журнала")
	h := historyRepo.created[0]
	assert.Equal(t, constants.StatusPickup, h.FromStatus)
	assert.Equal(t, constants.StatusInProgress, h.ToStatus)
	assert.Equal(t, entities.ActorStaff, h.ActorKind)
	assert.Equal(t, uint64(7), h.ActorID)
}

func TestApplyTransition_ForbiddenEdge(t *testing.T) {
	orderRepo := &fakeOrderRepo{}
	svc := newStatusService(orderRepo, &fakeHistoryRepo{})

	// PICKUP -> READY в графе отсутствует.
	_, err := svc.ApplyTransition(context.Background(), TransitionParams{
		BusinessID: 1,
		OrderID:    10,
		Expected:   constants.StatusPickup,
		Target:     constants.StatusReady,
		Actor:      staffActor(),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestApplyTransition_UnknownStatus(t *testing.T) {
	svc := newStatusService(&fakeOrderRepo{}, &fakeHistoryRepo{})

	_, err := svc.ApplyTransition(context.Background(), TransitionParams{
		BusinessID: 1,
		OrderID:    10,
		Expected:   constants.OrderStatus("WASHING"),
		Target:     constants.StatusReady,
		Actor:      staffActor(),
	})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestApplyTransition_LostRace(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		updateStatusCAS: func(ctx context.Context, tx pgx.Tx, p repositories.UpdateStatusCASParams) (bool, error) {
			// Конкурент успел раньше: ноль затронутых строк.
			return false, nil
		},
	}
	historyRepo := &fakeHistoryRepo{}
	svc := newStatusService(orderRepo, historyRepo)

	_, err := svc.ApplyTransition(context.Background(), TransitionParams{
		BusinessID: 1,
		OrderID:    10,
		Expected:   constants.StatusPickup,
		Target:     constants.StatusInProgress,
		Actor:      staffActor(),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, historyRepo.created, "проигранная гонка не должна оставлять след в журнале")
}

func TestCancel_FromAnyNonTerminal(t *testing.T) {
	current := constants.StatusAtWorkshop
	orderRepo := &fakeOrderRepo{
		findByID: func(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: current}, nil
		},
		updateStatusCAS: func(ctx context.Context, tx pgx.Tx, p repositories.UpdateStatusCASParams) (bool, error) {
			assert.Equal(t, current, p.Expected, "ожидаемым должен быть текущий статус заказа")
			assert.Equal(t, constants.StatusCancelled, p.Target)
			current = constants.StatusCancelled
			return true, nil
		},
	}
	svc := newStatusService(orderRepo, &fakeHistoryRepo{})

	order, err := svc.Cancel(context.Background(), 1, 10, staffActor(), nil)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusCancelled, order.Status)
}

func TestCancel_TerminalOrder(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		findByID: func(ctx context.Context, businessID, orderID uint64) (*entities.Order, error) {
			return &entities.Order{ID: orderID, BusinessID: businessID, Status: constants.StatusCompleted}, nil
		},
	}
	svc := newStatusService(orderRepo, &fakeHistoryRepo{})

	_, err := svc.Cancel(context.Background(), 1, 10, staffActor(), nil)
	assert.ErrorIs(t, err, apperrors.ErrOrderTerminal)
}
