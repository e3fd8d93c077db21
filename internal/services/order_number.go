package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry-system/internal/repositories"
	apperrors "laundry-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

type OrderNumberGeneratorInterface interface {
	Generate(ctx context.Context, businessID uint64) (string, error)
}

// OrderNumberGenerator выдает человекочитаемые номера заказов,
// уникальные в пределах бизнеса: <префикс>-<ггммдд>-<суффикс>.
// Гонка между конкурентными созданиями заказов гасится ограниченным
// циклом повторов с джиттером; исчерпание попыток — типизированная ошибка.
type OrderNumberGenerator struct {
	orderRepo   repositories.OrderRepositoryInterface
	prefix      string
	maxAttempts uint64
	logger      *zap.Logger

	// подменяется в тестах
	suffixFn func() string
}

func NewOrderNumberGenerator(
	orderRepo repositories.OrderRepositoryInterface,
	prefix string,
	maxAttempts int,
	logger *zap.Logger,
) OrderNumberGeneratorInterface {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &OrderNumberGenerator{
		orderRepo:   orderRepo,
		prefix:      prefix,
		maxAttempts: uint64(maxAttempts),
		logger:      logger,
		suffixFn:    randomSuffix,
	}
}

func randomSuffix() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:6])
}

var errNumberTaken = fmt.Errorf("номер заказа уже занят")

func (g *OrderNumberGenerator) Generate(ctx context.Context, businessID uint64) (string, error) {
	var number string

	backoff := retry.WithMaxRetries(g.maxAttempts-1, retry.WithJitterPercent(50, retry.NewConstant(20*time.Millisecond)))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate := fmt.Sprintf("%s-%s-%s", g.prefix, time.Now().Format("060102"), g.suffixFn())

		exists, err := g.orderRepo.OrderNumberExists(ctx, businessID, candidate)
		if err != nil {
			return err
		}
		if exists {
			g.logger.Warn("Коллизия номера заказа, повторная генерация",
				zap.Uint64("businessId", businessID),
				zap.String("candidate", candidate),
			)
			return retry.RetryableError(errNumberTaken)
		}

		number = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, errNumberTaken) {
			return "", apperrors.ErrOrderNumberExhausted
		}
		return "", err
	}

	return number, nil
}
