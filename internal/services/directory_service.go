package services

import (
	"context"

	"laundry-system/internal/dto"
	"laundry-system/internal/entities"
	"laundry-system/internal/repositories"

	"go.uber.org/zap"
)

// Справочники бизнеса: водители, клиенты, филиалы.
// Тонкая прослойка над репозиториями, логики здесь почти нет.

type DriverServiceInterface interface {
	Create(ctx context.Context, businessID uint64, data dto.CreateDriverDTO) (*entities.Driver, error)
	GetByID(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error)
	List(ctx context.Context, businessID uint64) ([]entities.Driver, error)
	Update(ctx context.Context, businessID, driverID uint64, data dto.UpdateDriverDTO) (*entities.Driver, error)
}

type DriverService struct {
	driverRepo repositories.DriverRepositoryInterface
	logger     *zap.Logger
}

func NewDriverService(driverRepo repositories.DriverRepositoryInterface, logger *zap.Logger) DriverServiceInterface {
	return &DriverService{driverRepo: driverRepo, logger: logger}
}

func (s *DriverService) Create(ctx context.Context, businessID uint64, data dto.CreateDriverDTO) (*entities.Driver, error) {
	id, err := s.driverRepo.Create(ctx, businessID, data)
	if err != nil {
		return nil, err
	}
	return s.driverRepo.FindByID(ctx, businessID, id)
}

func (s *DriverService) GetByID(ctx context.Context, businessID, driverID uint64) (*entities.Driver, error) {
	return s.driverRepo.FindByID(ctx, businessID, driverID)
}

func (s *DriverService) List(ctx context.Context, businessID uint64) ([]entities.Driver, error) {
	return s.driverRepo.List(ctx, businessID)
}

func (s *DriverService) Update(ctx context.Context, businessID, driverID uint64, data dto.UpdateDriverDTO) (*entities.Driver, error) {
	if err := s.driverRepo.Update(ctx, businessID, driverID, data); err != nil {
		return nil, err
	}
	return s.driverRepo.FindByID(ctx, businessID, driverID)
}

type CustomerServiceInterface interface {
	Create(ctx context.Context, businessID uint64, data dto.CreateCustomerDTO) (*entities.Customer, error)
	GetByID(ctx context.Context, businessID, customerID uint64) (*entities.Customer, error)
	List(ctx context.Context, businessID uint64, search string) ([]entities.Customer, error)
}

type CustomerService struct {
	customerRepo repositories.CustomerRepositoryInterface
	logger       *zap.Logger
}

func NewCustomerService(customerRepo repositories.CustomerRepositoryInterface, logger *zap.Logger) CustomerServiceInterface {
	return &CustomerService{customerRepo: customerRepo, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, businessID uint64, data dto.CreateCustomerDTO) (*entities.Customer, error) {
	id, err := s.customerRepo.Create(ctx, businessID, data)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.FindByID(ctx, businessID, id)
}

func (s *CustomerService) GetByID(ctx context.Context, businessID, customerID uint64) (*entities.Customer, error) {
	return s.customerRepo.FindByID(ctx, businessID, customerID)
}

func (s *CustomerService) List(ctx context.Context, businessID uint64, search string) ([]entities.Customer, error) {
	return s.customerRepo.List(ctx, businessID, search)
}

type StoreServiceInterface interface {
	Create(ctx context.Context, businessID uint64, data dto.CreateStoreDTO) (*entities.Store, error)
	GetByID(ctx context.Context, businessID, storeID uint64) (*entities.Store, error)
	List(ctx context.Context, businessID uint64) ([]entities.Store, error)
}

type StoreService struct {
	storeRepo repositories.StoreRepositoryInterface
	logger    *zap.Logger
}

func NewStoreService(storeRepo repositories.StoreRepositoryInterface, logger *zap.Logger) StoreServiceInterface {
	return &StoreService{storeRepo: storeRepo, logger: logger}
}

func (s *StoreService) Create(ctx context.Context, businessID uint64, data dto.CreateStoreDTO) (*entities.Store, error) {
	id, err := s.storeRepo.Create(ctx, businessID, data)
	if err != nil {
		return nil, err
	}
	return s.storeRepo.FindByID(ctx, businessID, id)
}

func (s *StoreService) GetByID(ctx context.Context, businessID, storeID uint64) (*entities.Store, error) {
	return s.storeRepo.FindByID(ctx, businessID, storeID)
}

func (s *StoreService) List(ctx context.Context, businessID uint64) ([]entities.Store, error) {
	return s.storeRepo.List(ctx, businessID)
}
