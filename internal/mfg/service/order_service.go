package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderService struct {
	orderRepo  *repository.OrderRepository
	userRepo   *repository.UserRepository
	productSvc *ProductService
	bomSvc     *BOMService
	db         *gorm.DB
}

func NewOrderService(orderRepo *repository.OrderRepository, userRepo *repository.UserRepository, productSvc *ProductService, bomSvc *BOMService, db *gorm.DB) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		productSvc: productSvc,
		bomSvc:     bomSvc,
		db:         db,
	}
}

type CreateOrderRequest struct {
	ProductSearch    string  `json:"product_search"`
	Quantity         float64 `json:"quantity"`
	PlannedStartDate string  `json:"planned_start_date"`
	PlannedEndDate   string  `json:"planned_end_date"`
	Priority         string  `json:"priority"`
	Description      string  `json:"description"`
}

func parsePlannedDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// validateCreateOrder 逐项校验创建请求，返回解析后的计划日期
func validateCreateOrder(req CreateOrderRequest) (start, end time.Time, details []string) {
	if strings.TrimSpace(req.ProductSearch) == "" {
		details = append(details, "product_search is required")
	}
	// 订单数量为整件数；组件需求量可为小数，但成品按件下单
	if req.Quantity <= 0 || req.Quantity != math.Trunc(req.Quantity) {
		details = append(details, "quantity must be a positive integer")
	}

	var err error
	if req.PlannedStartDate == "" {
		details = append(details, "planned_start_date is required")
	} else if start, err = parsePlannedDate(req.PlannedStartDate); err != nil {
		details = append(details, "planned_start_date must be an ISO date")
	}
	if req.PlannedEndDate == "" {
		details = append(details, "planned_end_date is required")
	} else if end, err = parsePlannedDate(req.PlannedEndDate); err != nil {
		details = append(details, "planned_end_date must be an ISO date")
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		details = append(details, "planned_start_date must not be after planned_end_date")
	}

	switch req.Priority {
	case "", entity.OrderPriorityLow, entity.OrderPriorityNormal, entity.OrderPriorityHigh, entity.OrderPriorityUrgent:
	default:
		details = append(details, "priority must be one of low, normal, high, urgent")
	}
	return start, end, details
}

// CreateByProductSearch 解析产品、展开BOM并原子落库。
// 解析或展开失败时不产生任何写入；落库为单事务，编号在事务内分配。
func (s *OrderService) CreateByProductSearch(ctx context.Context, req CreateOrderRequest, userID string) (*entity.ManufacturingOrder, error) {
	start, end, details := validateCreateOrder(req)
	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	product, err := s.productSvc.Resolve(ctx, req.ProductSearch)
	if err != nil {
		return nil, err
	}

	bom, components, err := s.bomSvc.Expand(ctx, product, req.Quantity)
	if err != nil {
		return nil, err
	}

	order := &entity.ManufacturingOrder{
		ID:               uuid.New().String(),
		ProductID:        product.ID,
		ProductSKU:       product.SKU,
		ProductName:      product.Name,
		BOMID:            bom.ID,
		BOMVersion:       bom.Version,
		Quantity:         req.Quantity,
		Status:           entity.OrderStatusDraft,
		Priority:         req.Priority,
		Description:      req.Description,
		PlannedStartDate: start,
		PlannedEndDate:   end,
		CreatedBy:        userID,
	}
	if order.Priority == "" {
		order.Priority = entity.OrderPriorityNormal
	}
	for i := range components {
		components[i].OrderID = order.ID
	}
	order.Components = components

	audit := &entity.AuditLog{
		ID:         uuid.New().String(),
		ActorID:    userID,
		ActorName:  s.actorName(ctx, userID),
		Action:     entity.AuditActionCreate,
		EntityType: "manufacturing_order",
	}

	if err := s.orderRepo.CreateWithComponents(ctx, order, audit); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.ManufacturingOrder, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, params repository.OrderListParams) ([]entity.ManufacturingOrder, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// Confirm 下达订单：draft→confirmed，按BOM工序生成作业工单
func (s *OrderService) Confirm(ctx context.Context, id, userID string) (*entity.ManufacturingOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusDraft {
		return nil, fmt.Errorf("%w: cannot confirm order in status %s", ErrInvalidTransition, order.Status)
	}

	bom, err := s.bomSvc.Get(ctx, order.BOMID)
	if err != nil {
		return nil, fmt.Errorf("load bom: %w", err)
	}

	var workOrders []entity.WorkOrder
	for _, op := range bom.Operations {
		workOrders = append(workOrders, entity.WorkOrder{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			Operation:       op.Name,
			Workstation:     op.Workstation,
			DurationMinutes: op.DurationMinutes,
			Sequence:        op.Sequence,
			Status:          entity.WorkOrderStatusPending,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(workOrders) > 0 {
			if err := tx.Create(&workOrders).Error; err != nil {
				return fmt.Errorf("create work orders: %w", err)
			}
		}
		return s.transition(ctx, tx, order, entity.OrderStatusConfirmed, userID)
	})
	if err != nil {
		return nil, err
	}
	order.WorkOrders = workOrders
	return order, nil
}

// Start 开工：confirmed→in_progress，发料扣减库存并写台账
func (s *OrderService) Start(ctx context.Context, id, userID string) (*entity.ManufacturingOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusConfirmed {
		return nil, fmt.Errorf("%w: cannot start order in status %s", ErrInvalidTransition, order.Status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for i := range order.Components {
			comp := &order.Components[i]
			needQty := comp.QuantityRequired - comp.QuantityConsumed
			if needQty <= 0 {
				continue
			}

			var level entity.StockLevel
			if err := tx.Where("product_id = ?", comp.ComponentID).First(&level).Error; err != nil {
				return fmt.Errorf("%w: %s has no stock", ErrInsufficientStock, comp.ComponentSKU)
			}
			if level.AvailableQty < needQty {
				return fmt.Errorf("%w: %s needs %.4f, available %.4f", ErrInsufficientStock, comp.ComponentSKU, needQty, level.AvailableQty)
			}

			level.Quantity -= needQty
			level.AvailableQty -= needQty
			level.LastMovedAt = &now
			if err := tx.Save(&level).Error; err != nil {
				return fmt.Errorf("update stock level: %w", err)
			}

			comp.QuantityConsumed += needQty
			if err := tx.Save(comp).Error; err != nil {
				return fmt.Errorf("update component consumption: %w", err)
			}

			entry := entity.StockEntry{
				ID:            uuid.New().String(),
				ProductID:     comp.ComponentID,
				ProductSKU:    comp.ComponentSKU,
				ProductName:   comp.ComponentName,
				Movement:      entity.StockMovementOut,
				Quantity:      needQty,
				Unit:          comp.Unit,
				ReferenceType: entity.StockRefManufacturingOrder,
				ReferenceID:   order.ID,
				ReferenceCode: order.Reference,
				CreatedBy:     userID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("create stock entry: %w", err)
			}
		}

		order.ActualStart = &now
		return s.transition(ctx, tx, order, entity.OrderStatusInProgress, userID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// StartWorkOrder 作业工单开工
func (s *OrderService) StartWorkOrder(ctx context.Context, id string) (*entity.WorkOrder, error) {
	wo, err := s.orderRepo.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo.Status != entity.WorkOrderStatusPending {
		return nil, fmt.Errorf("%w: cannot start work order in status %s", ErrInvalidTransition, wo.Status)
	}
	now := time.Now()
	wo.Status = entity.WorkOrderStatusInProgress
	wo.StartedAt = &now
	if err := s.orderRepo.UpdateWorkOrder(ctx, wo); err != nil {
		return nil, fmt.Errorf("update work order: %w", err)
	}
	return wo, nil
}

// CompleteWorkOrder 作业工单完工；最后一道工序完成后订单转to_close
func (s *OrderService) CompleteWorkOrder(ctx context.Context, id, userID string) (*entity.WorkOrder, error) {
	wo, err := s.orderRepo.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo.Status == entity.WorkOrderStatusDone {
		return nil, fmt.Errorf("%w: work order already done", ErrInvalidTransition)
	}
	now := time.Now()
	if wo.StartedAt == nil {
		wo.StartedAt = &now
	}
	wo.Status = entity.WorkOrderStatusDone
	wo.FinishedAt = &now

	// 工单完工与订单转to_close必须同进同退，否则订单会卡死在in_progress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(wo).Error; err != nil {
			return fmt.Errorf("update work order: %w", err)
		}
		var open int64
		if err := tx.Model(&entity.WorkOrder{}).
			Where("order_id = ? AND status <> ?", wo.OrderID, entity.WorkOrderStatusDone).
			Count(&open).Error; err != nil {
			return fmt.Errorf("count open work orders: %w", err)
		}
		if open > 0 {
			return nil
		}
		var order entity.ManufacturingOrder
		if err := tx.Where("id = ? AND deleted_at IS NULL", wo.OrderID).First(&order).Error; err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if order.Status != entity.OrderStatusInProgress {
			return nil
		}
		return s.transition(ctx, tx, &order, entity.OrderStatusToClose, userID)
	})
	if err != nil {
		return nil, err
	}
	return wo, nil
}

// Close 完工入库：to_close→done（无工序时允许从in_progress直接关单），成品入库并写台账
func (s *OrderService) Close(ctx context.Context, id, userID string) (*entity.ManufacturingOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusToClose {
		if order.Status != entity.OrderStatusInProgress || len(order.WorkOrders) > 0 {
			return nil, fmt.Errorf("%w: cannot close order in status %s", ErrInvalidTransition, order.Status)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var level entity.StockLevel
		findErr := tx.Where("product_id = ?", order.ProductID).First(&level).Error
		switch {
		case findErr == nil:
			level.Quantity += order.Quantity
			level.AvailableQty += order.Quantity
			level.LastMovedAt = &now
			if err := tx.Save(&level).Error; err != nil {
				return fmt.Errorf("update stock level: %w", err)
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			level = entity.StockLevel{
				ID:           uuid.New().String(),
				ProductID:    order.ProductID,
				ProductSKU:   order.ProductSKU,
				ProductName:  order.ProductName,
				Quantity:     order.Quantity,
				AvailableQty: order.Quantity,
				Unit:         "pcs",
				LastMovedAt:  &now,
			}
			if err := tx.Create(&level).Error; err != nil {
				return fmt.Errorf("create stock level: %w", err)
			}
		default:
			return fmt.Errorf("load stock level: %w", findErr)
		}

		entry := entity.StockEntry{
			ID:            uuid.New().String(),
			ProductID:     order.ProductID,
			ProductSKU:    order.ProductSKU,
			ProductName:   order.ProductName,
			Movement:      entity.StockMovementIn,
			Quantity:      order.Quantity,
			Unit:          level.Unit,
			ReferenceType: entity.StockRefManufacturingOrder,
			ReferenceID:   order.ID,
			ReferenceCode: order.Reference,
			CreatedBy:     userID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create stock entry: %w", err)
		}

		order.ActualEnd = &now
		return s.transition(ctx, tx, order, entity.OrderStatusDone, userID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel 取消订单，仅draft/confirmed允许
func (s *OrderService) Cancel(ctx context.Context, id, userID string) (*entity.ManufacturingOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusDraft && order.Status != entity.OrderStatusConfirmed {
		return nil, fmt.Errorf("%w: cannot cancel order in status %s", ErrInvalidTransition, order.Status)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.transition(ctx, tx, order, entity.OrderStatusCancelled, userID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// transition 保存状态变更并写审计日志，须在调用方事务内执行
func (s *OrderService) transition(ctx context.Context, tx *gorm.DB, order *entity.ManufacturingOrder, to, userID string) error {
	from := order.Status
	order.Status = to
	if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	audit := entity.AuditLog{
		ID:         uuid.New().String(),
		ActorID:    userID,
		ActorName:  s.actorName(ctx, userID),
		Action:     entity.AuditActionStatusChange,
		EntityType: "manufacturing_order",
		EntityID:   order.ID,
		Detail:     fmt.Sprintf("%s: %s -> %s", order.Reference, from, to),
	}
	if err := tx.Create(&audit).Error; err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// actorName 审计归属用，查不到用户时留空
func (s *OrderService) actorName(ctx context.Context, userID string) string {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Name
}

// ExportXLSX 导出订单清单，含组件明细页
func (s *OrderService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	f := excelize.NewFile()
	const orderSheet = "Manufacturing Orders"
	f.SetSheetName("Sheet1", orderSheet)

	orderHeaders := []string{"Reference", "Product SKU", "Product", "Quantity", "Status", "Priority", "Planned Start", "Planned End", "Created At"}
	for i, h := range orderHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(orderSheet, cell, h)
	}
	for row, order := range orders {
		values := []interface{}{
			order.Reference,
			order.ProductSKU,
			order.ProductName,
			order.Quantity,
			order.Status,
			order.Priority,
			order.PlannedStartDate.Format("2006-01-02"),
			order.PlannedEndDate.Format("2006-01-02"),
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(orderSheet, cell, v)
		}
	}

	const compSheet = "Components"
	f.NewSheet(compSheet)
	compHeaders := []string{"Order Reference", "Component SKU", "Component", "Quantity Required", "Quantity Consumed", "Unit"}
	for i, h := range compHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(compSheet, cell, h)
	}
	row := 2
	for _, order := range orders {
		for _, comp := range order.Components {
			values := []interface{}{
				order.Reference,
				comp.ComponentSKU,
				comp.ComponentName,
				comp.QuantityRequired,
				comp.QuantityConsumed,
				comp.Unit,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(compSheet, cell, v)
			}
			row++
		}
	}
	return f, nil
}
