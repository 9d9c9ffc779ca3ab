package repository

import (
	"context"

	"github.com/makerflow/mfg/internal/mfg/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchFinishedGoods 按名称模糊匹配成品，忽略大小写，按名称排序
func (r *ProductRepository) SearchFinishedGoods(ctx context.Context, search string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("category = ? AND deleted_at IS NULL", entity.CategoryFinishedGood).
		Where("name ILIKE ?", "%"+search+"%").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

type ProductListParams struct {
	Search   string
	Category string
	Page     int
	Size     int
}

func (r *ProductRepository) List(ctx context.Context, params ProductListParams) ([]entity.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{}).Where("deleted_at IS NULL")
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", kw, kw)
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
	var products []entity.Product
	err := query.Order("name ASC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&products).Error
	return products, total, err
}
