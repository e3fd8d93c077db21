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

type CustomerRepositoryInterface interface {
	Create(ctx context.Context, businessID uint64, data dto.CreateCustomerDTO) (uint64, error)
	FindByID(ctx context.Context, businessID, customerID uint64) (*entities.Customer, error)
	List(ctx context.Context, businessID uint64, search string) ([]entities.Customer, error)
}

type CustomerRepository struct {
	storage *pgxpool.Pool
}

func NewCustomerRepository(storage *pgxpool.Pool) CustomerRepositoryInterface {
	return &CustomerRepository{storage: storage}
}

func (r *CustomerRepository) Create(ctx context.Context, businessID uint64, data dto.CreateCustomerDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO customers (business_id, name, phone, address) VALUES ($1, $2, $3, $4) RETURNING id`,
		businessID, data.Name, data.Phone, data.Address,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания клиента: %w", err)
	}
	return id, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, businessID, customerID uint64) (*entities.Customer, error) {
	var c entities.Customer
	err := r.storage.QueryRow(ctx,
		`SELECT id, business_id, name, phone, address, created_at
		 FROM customers WHERE id = $1 AND business_id = $2`,
		customerID, businessID,
	).Scan(&c.ID, &c.BusinessID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска клиента: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, businessID uint64, search string) ([]entities.Customer, error) {
	query := `SELECT id, business_id, name, phone, address, created_at
		FROM customers WHERE business_id = $1`
	args := []interface{}{businessID}
	if search != "" {
		query += ` AND (name ILIKE $2 OR phone ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка клиентов: %w", err)
	}
	defer rows.Close()

	customers := make([]entities.Customer, 0)
	for rows.Next() {
		var c entities.Customer
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования клиента: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
