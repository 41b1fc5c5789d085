package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrValidation is returned for bad or missing product fields.
var ErrValidation = errors.New("invalid product fields")

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service owns the product catalog. Admin gating happens at the transport
// layer; the service assumes the caller is allowed to mutate.
type Service struct {
	repo   productRepo
	images storage.ImageStore
	logger zerolog.Logger
}

func New(repo productRepo, images storage.ImageStore, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		images: images,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// ImageUpload carries an uploaded file through the service boundary.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// ProductInput is the mutable subset of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       *ImageUpload
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Create stores the image (when provided) and inserts the product. Returns
// the created product; its ImageURL is empty when no file was uploaded.
func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	imageURL, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		ImageURL:    imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update overwrites name, description and price. A new image replaces the
// existing URL; without one the stored URL stays untouched.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	imageURL, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		ImageURL:    imageURL,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the product permanently. Historical order lines keep their
// snapshotted name and price.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	if img == nil {
		return "", nil
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(img.Filename))
	url, err := s.images.Save(ctx, name, img.ContentType, img.Reader)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	s.logger.Debug().Str("image", name).Msg("image stored")
	return url, nil
}

func validate(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrValidation
	}
	if in.Price.IsNegative() {
		return ErrValidation
	}
	return nil
}
