package certificates

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindByVIN(ctx context.Context, vin string) (*Certificate, error)
	Save(ctx context.Context, cert *Certificate) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByVIN(ctx context.Context, vin string) (*Certificate, error) {
	var cert Certificate
	err := r.db.WithContext(ctx).Where("vin = ?", vin).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *gormRepository) Save(ctx context.Context, cert *Certificate) error {
	return r.db.WithContext(ctx).Save(cert).Error
}
