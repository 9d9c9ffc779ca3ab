package repository

import (
	"context"

	"github.com/makerflow/mfg/internal/mfg/entity"
	"gorm.io/gorm"
)

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

func (r *StockRepository) GetByProduct(ctx context.Context, productID string) (*entity.StockLevel, error) {
	var level entity.StockLevel
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *StockRepository) Create(ctx context.Context, level *entity.StockLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *StockRepository) Update(ctx context.Context, level *entity.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

func (r *StockRepository) CreateEntry(ctx context.Context, e *entity.StockEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

type StockListParams struct {
	ProductID string
	Page      int
	Size      int
}

func (r *StockRepository) ListLevels(ctx context.Context, params StockListParams) ([]entity.StockLevel, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.StockLevel{})
	if params.ProductID != "" {
		query = query.Where("product_id = ?", params.ProductID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var levels []entity.StockLevel
	err := query.Order("product_name ASC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&levels).Error
	return levels, total, err
}

func (r *StockRepository) ListEntries(ctx context.Context, params StockListParams) ([]entity.StockEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.StockEntry{})
	if params.ProductID != "" {
		query = query.Where("product_id = ?", params.ProductID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var entries []entity.StockEntry
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&entries).Error
	return entries, total, err
}
