package service

import (
	"context"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/repository"
)

// ProductService инкапсулирует управление каталогом
type ProductService struct {
	repo   repository.CatalogRepository
	mirror *Mirror
}

func NewProductService(repo repository.CatalogRepository, mirror *Mirror) *ProductService {
	return &ProductService{repo: repo, mirror: mirror}
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.Category == "" || p.Unit == "" || p.Price < 0 || p.Stock < 0 {
		return nil, ErrInvalidInput
	}
	cp := p
	cp.ID = "" // repo assigns
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	s.mirror.SaveProducts(ctx)
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" || p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return nil, ErrInvalidInput
	}
	cp := p
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	s.mirror.SaveProducts(ctx)
	return &cp, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.mirror.SaveProducts(ctx)
	return nil
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, f)
}
