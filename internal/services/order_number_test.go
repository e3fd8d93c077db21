package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "laundry-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(repo *fakeOrderRepo, maxAttempts int) *OrderNumberGenerator {
	gen := NewOrderNumberGenerator(repo, "LDR", maxAttempts, zap.NewNop()).(*OrderNumberGenerator)
	return gen
}

func TestOrderNumberGenerator_Format(t *testing.T) {
	repo := &fakeOrderRepo{
		orderNumberExists: func(ctx context.Context, businessID uint64, number string) (bool, error) {
			return false, nil
		},
	}
	gen := newTestGenerator(repo, 5)
	gen.suffixFn = func() string { return "AB12CD" }

	number, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)

	expected := fmt.Sprintf("LDR-%s-AB12CD", time.Now().Format("060102"))
	assert.Equal(t, expected, number, "номер должен иметь формат префикс-дата-суффикс")
}

func TestOrderNumberGenerator_RetriesOnCollision(t *testing.T) {
	calls := 0
	repo := &fakeOrderRepo{
		orderNumberExists: func(ctx context.Context, businessID uint64, number string) (bool, error) {
			calls++
			// Первые две попытки заняты, третья свободна.
			return calls < 3, nil
		},
	}
	gen := newTestGenerator(repo, 5)

	number, err := gen.Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, number)
	assert.Equal(t, 3, calls, "генератор должен был сделать ровно три попытки")
}

func TestOrderNumberGenerator_Exhaustion(t *testing.T) {
	calls := 0
	repo := &fakeOrderRepo{
		orderNumberExists: func(ctx context.Context, businessID uint64, number string) (bool, error) {
			calls++
			return true, nil
		},
	}
	gen := newTestGenerator(repo, 3)

	_, err := gen.Generate(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrOrderNumberExhausted)
	assert.Equal(t, 3, calls, "попыток должно быть ровно maxAttempts")
}

func TestOrderNumberGenerator_RepoErrorNotRetried(t *testing.T) {
	dbErr := errors.New("обрыв соединения")
	calls := 0
	repo := &fakeOrderRepo{
		orderNumberExists: func(ctx context.Context, businessID uint64, number string) (bool, error) {
			calls++
			return false, dbErr
		},
	}
	gen := newTestGenerator(repo, 5)

	_, err := gen.Generate(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, apperrors.ErrOrderNumberExhausted)
	assert.Equal(t, 1, calls, "ошибка базы не должна приводить к повторам")
}
