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

type StoreRepositoryInterface interface {
	Create(ctx context.Context, businessID uint64, data dto.CreateStoreDTO) (uint64, error)
	FindByID(ctx context.Context, businessID, storeID uint64) (*entities.Store, error)
	List(ctx context.Context, businessID uint64) ([]entities.Store, error)
}

type StoreRepository struct {
	storage *pgxpool.Pool
}

func NewStoreRepository(storage *pgxpool.Pool) StoreRepositoryInterface {
	return &StoreRepository{storage: storage}
}

func (r *StoreRepository) Create(ctx context.Context, businessID uint64, data dto.CreateStoreDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO stores (business_id, name, address, is_active) VALUES ($1, $2, $3, TRUE) RETURNING id`,
		businessID, data.Name, data.Address,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания филиала: %w", err)
	}
	return id, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, businessID, storeID uint64) (*entities.Store, error) {
	var s entities.Store
	err := r.storage.QueryRow(ctx,
		`SELECT id, business_id, name, address, is_active, created_at
		 FROM stores WHERE id = $1 AND business_id = $2`,
		storeID, businessID,
	).Scan(&s.ID, &s.BusinessID, &s.Name, &s.Address, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска филиала: %w", err)
	}
	return &s, nil
}

func (r *StoreRepository) List(ctx context.Context, businessID uint64) ([]entities.Store, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, business_id, name, address, is_active, created_at
		 FROM stores WHERE business_id = $1 ORDER BY name`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка филиалов: %w", err)
	}
	defer rows.Close()

	stores := make([]entities.Store, 0)
	for rows.Next() {
		var s entities.Store
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.Address, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования филиала: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
