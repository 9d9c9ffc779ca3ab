package repository

import (
	"context"
	"fmt"

	"github.com/makerflow/mfg/internal/mfg/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// NextReference 从序列取下一个订单编号，需在事务内调用
func NextReference(tx *gorm.DB) (string, error) {
	var seq int64
	if err := tx.Raw("SELECT nextval('mo_reference_seq')").Scan(&seq).Error; err != nil {
		return "", fmt.Errorf("allocate order reference: %w", err)
	}
	return fmt.Sprintf("MO-%06d", seq), nil
}

// CreateWithComponents 在单个事务中写入订单头、组件需求行与审计日志。
// 编号在事务内分配；任一行失败则整体回滚，不留下半写入的订单。
func (r *OrderRepository) CreateWithComponents(ctx context.Context, order *entity.ManufacturingOrder, audit *entity.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ref, err := NextReference(tx)
		if err != nil {
			return err
		}
		order.Reference = ref

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if audit != nil {
			audit.EntityID = order.ID
			audit.Detail = fmt.Sprintf("created %s (%s x %.4g)", order.Reference, order.ProductName, order.Quantity)
			if err := tx.Create(audit).Error; err != nil {
				return fmt.Errorf("create audit log: %w", err)
			}
		}
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.ManufacturingOrder, error) {
	var order entity.ManufacturingOrder
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("WorkOrders", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *entity.ManufacturingOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

type OrderListParams struct {
	Status    string
	ProductID string
	Keyword   string
	Page      int
	Size      int
}

func (r *OrderRepository) List(ctx context.Context, params OrderListParams) ([]entity.ManufacturingOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ManufacturingOrder{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.ProductID != "" {
		query = query.Where("product_id = ?", params.ProductID)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("reference ILIKE ? OR product_name ILIKE ?", kw, kw)
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
	var orders []entity.ManufacturingOrder
	err := query.Order("reference DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&orders).Error
	return orders, total, err
}

// ListAll 导出用，按编号升序返回全部订单含组件
func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.ManufacturingOrder, error) {
	var orders []entity.ManufacturingOrder
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("deleted_at IS NULL").
		Order("reference ASC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) GetWorkOrder(ctx context.Context, id string) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&wo).Error
	if err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *OrderRepository) UpdateWorkOrder(ctx context.Context, wo *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Save(wo).Error
}

