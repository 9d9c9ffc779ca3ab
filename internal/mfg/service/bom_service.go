package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/repository"
	"gorm.io/gorm"
)

type BOMService struct {
	repo        *repository.BOMRepository
	productRepo *repository.ProductRepository
}

func NewBOMService(repo *repository.BOMRepository, productRepo *repository.ProductRepository) *BOMService {
	return &BOMService{repo: repo, productRepo: productRepo}
}

// ExpandComponents 按订单数量展开BOM组件需求。
// 行数与顺序逐行镜像BOM组件，quantity_required = 单件用量 × 订单数量，不取整。
func ExpandComponents(bom *entity.BillOfMaterial, orderQty float64) []entity.OrderComponent {
	components := make([]entity.OrderComponent, 0, len(bom.Components))
	for _, item := range bom.Components {
		components = append(components, entity.OrderComponent{
			ID:               uuid.New().String(),
			ComponentID:      item.ComponentID,
			ComponentSKU:     item.ComponentSKU,
			ComponentName:    item.ComponentName,
			QuantityRequired: item.Quantity * orderQty,
			Unit:             item.Unit,
			Sequence:         item.Sequence,
		})
	}
	return components
}

// Expand 取产品的有效BOM并展开组件需求。无BOM返回ErrMissingBOM。
func (s *BOMService) Expand(ctx context.Context, product *entity.Product, orderQty float64) (*entity.BillOfMaterial, []entity.OrderComponent, error) {
	bom, err := s.repo.FindActiveByProduct(ctx, product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingBOM, product.Name)
		}
		return nil, nil, fmt.Errorf("load bom: %w", err)
	}
	return bom, ExpandComponents(bom, orderQty), nil
}

func (s *BOMService) Get(ctx context.Context, id string) (*entity.BillOfMaterial, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BOMService) ListByProduct(ctx context.Context, productID string) ([]entity.BillOfMaterial, error) {
	return s.repo.ListByProduct(ctx, productID)
}

type CreateBOMComponent struct {
	ComponentID string  `json:"component_id"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

type CreateBOMOperation struct {
	Name            string `json:"name"`
	Workstation     string `json:"workstation"`
	DurationMinutes int    `json:"duration_minutes"`
}

type CreateBOMRequest struct {
	Reference  string               `json:"reference"`
	ProductID  string               `json:"product_id"`
	Version    string               `json:"version"`
	Notes      string               `json:"notes"`
	Components []CreateBOMComponent `json:"components"`
	Operations []CreateBOMOperation `json:"operations"`
}

func (s *BOMService) Create(ctx context.Context, req CreateBOMRequest, userID string) (*entity.BillOfMaterial, error) {
	var details []string
	if strings.TrimSpace(req.Reference) == "" {
		details = append(details, "reference is required")
	}
	if req.ProductID == "" {
		details = append(details, "product_id is required")
	}
	if len(req.Components) == 0 {
		details = append(details, "components must not be empty")
	}
	for i, c := range req.Components {
		if c.ComponentID == "" {
			details = append(details, fmt.Sprintf("components[%d].component_id is required", i))
		}
		if c.Quantity <= 0 {
			details = append(details, fmt.Sprintf("components[%d].quantity must be positive", i))
		}
	}
	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrProductNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product.Category != entity.CategoryFinishedGood {
		return nil, &ValidationError{Details: []string{"product_id must reference a finished good"}}
	}

	bom := &entity.BillOfMaterial{
		ID:        uuid.New().String(),
		Reference: strings.TrimSpace(req.Reference),
		ProductID: product.ID,
		Version:   req.Version,
		Status:    entity.BOMStatusActive,
		Notes:     req.Notes,
		CreatedBy: userID,
	}
	if bom.Version == "" {
		bom.Version = "v1"
	}

	for i, c := range req.Components {
		component, err := s.productRepo.FindByID(ctx, c.ComponentID)
		if err != nil {
			return nil, fmt.Errorf("load component %s: %w", c.ComponentID, err)
		}
		unit := c.Unit
		if unit == "" {
			unit = component.Unit
		}
		bom.Components = append(bom.Components, entity.BOMComponent{
			ID:            uuid.New().String(),
			ComponentID:   component.ID,
			ComponentSKU:  component.SKU,
			ComponentName: component.Name,
			Quantity:      c.Quantity,
			Unit:          unit,
			Sequence:      i,
		})
	}
	for i, op := range req.Operations {
		bom.Operations = append(bom.Operations, entity.BOMOperation{
			ID:              uuid.New().String(),
			Name:            op.Name,
			Workstation:     op.Workstation,
			DurationMinutes: op.DurationMinutes,
			Sequence:        i,
		})
	}

	if err := s.repo.Create(ctx, bom); err != nil {
		return nil, fmt.Errorf("create bom: %w", err)
	}
	return bom, nil
}
