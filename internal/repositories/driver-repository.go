package repositories

import (
	"context"
	"errors"
	"fmt"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	apperrors "laundry-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepositoryInterface interface {
	Create(ctx context.Context, businessID uint64, data dto.CreateDriverDTO) (uint64, error)
	FindByID(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error)
	FindActive(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error)
	List(ctx context.Context, businessID uint64) ([]entities.Driver, error)
	Update(ctx context.Context, businessID, driverID uint64, data dto.UpdateDriverDTO) error
}

type DriverRepository struct {
	storage *pgxpool.Pool
}

func NewDriverRepository(storage *pgxpool.Pool) DriverRepositoryInterface {
	return &DriverRepository{storage: storage}
}

func (r *DriverRepository) Create(ctx context.Context, businessID uint64, data dto.CreateDriverDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO drivers (business_id, name, phone, is_active) VALUES ($1, $2, $3, TRUE) RETURNING id`,
		businessID, data.Name, data.Phone,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания водителя: %w", err)
	}
	return id, nil
}

func (r *DriverRepository) FindByID(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error) {
	return r.find(ctx, businessID, driverID, false)
}

// FindActive возвращает водителя только если он активен и принадлежит
// данному бизнесу — этим подтверждается назначение на заказ.
func (r *DriverRepository) FindActive(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error) {
	return r.find(ctx, businessID, driverID, true)
}

func (r *DriverRepository) find(ctx context.Context, businessID, driverID uint64, onlyActive bool) (*entities.Driver, error) {
	query := `SELECT id, business_id, name, phone, is_active, created_at
		FROM drivers WHERE id = $1 AND business_id = $2`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}

	var d entities.Driver
	err := r.storage.QueryRow(ctx, query, driverID, businessID).Scan(
		&d.ID, &d.BusinessID, &d.Name, &d.Phone, &d.IsActive, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска водителя: %w", err)
	}
	return &d, nil
}

func (r *DriverRepository) List(ctx context.Context, businessID uint64) ([]entities.Driver, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, business_id, name, phone, is_active, created_at
		 FROM drivers WHERE business_id = $1 ORDER BY name`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка водителей: %w", err)
	}
	defer rows.Close()

	drivers := make([]entities.Driver, 0)
	for rows.Next() {
		var d entities.Driver
		if err := rows.Scan(&d.ID, &d.BusinessID, &d.Name, &d.Phone, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования водителя: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *DriverRepository) Update(ctx context.Context, businessID, driverID uint64, data dto.UpdateDriverDTO) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE drivers
		 SET name = COALESCE($1, name),
		     phone = COALESCE($2, phone),
		     is_active = COALESCE($3, is_active)
		 WHERE id = $4 AND business_id = $5`,
		data.Name, data.Phone, data.IsActive, driverID, businessID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления водителя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
