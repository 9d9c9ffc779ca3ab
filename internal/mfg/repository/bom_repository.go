package repository

import (
	"context"

	"github.com/makerflow/mfg/internal/mfg/entity"
	"gorm.io/gorm"
)

type BOMRepository struct {
	db *gorm.DB
}

func NewBOMRepository(db *gorm.DB) *BOMRepository {
	return &BOMRepository{db: db}
}

func (r *BOMRepository) Create(ctx context.Context, bom *entity.BillOfMaterial) error {
	return r.db.WithContext(ctx).Create(bom).Error
}

func (r *BOMRepository) FindByID(ctx context.Context, id string) (*entity.BillOfMaterial, error) {
	var bom entity.BillOfMaterial
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Operations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Product").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&bom).Error
	if err != nil {
		return nil, err
	}
	return &bom, nil
}

// FindActiveByProduct 返回产品的首个有效BOM，组件与工序按sequence排序
func (r *BOMRepository) FindActiveByProduct(ctx context.Context, productID string) (*entity.BillOfMaterial, error) {
	var bom entity.BillOfMaterial
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Operations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("product_id = ? AND status = ? AND deleted_at IS NULL", productID, entity.BOMStatusActive).
		Order("created_at ASC").
		First(&bom).Error
	if err != nil {
		return nil, err
	}
	return &bom, nil
}

func (r *BOMRepository) ListByProduct(ctx context.Context, productID string) ([]entity.BillOfMaterial, error) {
	var boms []entity.BillOfMaterial
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("product_id = ? AND deleted_at IS NULL", productID).
		Order("created_at ASC").
		Find(&boms).Error
	return boms, err
}
