package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/testutil"
	"gorm.io/gorm"
)

func newTestOrder(productID, userID string, qty float64) *entity.ManufacturingOrder {
	orderID := uuid.New().String()
	return &entity.ManufacturingOrder{
		ID:               orderID,
		ProductID:        productID,
		ProductSKU:       "CHAIR-01",
		ProductName:      "Wooden Chair",
		BOMID:            uuid.New().String(),
		BOMVersion:       "1",
		Quantity:         qty,
		Status:           entity.OrderStatusDraft,
		Priority:         entity.OrderPriorityNormal,
		PlannedStartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		PlannedEndDate:   time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		CreatedBy:        userID,
		Components: []entity.OrderComponent{
			{ID: uuid.New().String(), OrderID: orderID, ComponentID: uuid.New().String(), ComponentSKU: "LEG-01", ComponentName: "Chair Leg", QuantityRequired: qty * 4, Unit: "pcs", Sequence: 1},
			{ID: uuid.New().String(), OrderID: orderID, ComponentID: uuid.New().String(), ComponentSKU: "SEAT-01", ComponentName: "Seat Board", QuantityRequired: qty, Unit: "pcs", Sequence: 2},
		},
	}
}

func TestCreateWithComponentsPersistsOrderAndAudit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.SeedTestUser(t, db, "Planner", "planner@test.com")
	product := testutil.SeedProduct(t, db, "CHAIR-01", "Wooden Chair", entity.CategoryFinishedGood)

	repo := NewOrderRepository(db)
	order := newTestOrder(product.ID, user.ID, 5)
	audit := &entity.AuditLog{
		ID:         uuid.New().String(),
		ActorID:    user.ID,
		ActorName:  user.Name,
		Action:     entity.AuditActionCreate,
		EntityType: "manufacturing_order",
	}

	if err := repo.CreateWithComponents(context.Background(), order, audit); err != nil {
		t.Fatalf("CreateWithComponents: %v", err)
	}

	if !strings.HasPrefix(order.Reference, "MO-") || len(order.Reference) != 9 {
		t.Errorf("Expected reference like MO-000001, got %q", order.Reference)
	}

	got, err := repo.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Components) != 2 {
		t.Fatalf("Expected 2 component rows, got %d", len(got.Components))
	}
	if got.Components[0].Sequence != 1 || got.Components[1].Sequence != 2 {
		t.Errorf("Expected components ordered by sequence, got %d then %d",
			got.Components[0].Sequence, got.Components[1].Sequence)
	}

	var auditCount int64
	db.Model(&entity.AuditLog{}).Where("entity_id = ?", order.ID).Count(&auditCount)
	if auditCount != 1 {
		t.Errorf("Expected 1 audit row, got %d", auditCount)
	}
}

// 组件行写入失败时，订单头与审计日志都不能留下
func TestCreateWithComponentsRollsBackOnFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.SeedTestUser(t, db, "Planner", "planner@test.com")
	product := testutil.SeedProduct(t, db, "CHAIR-01", "Wooden Chair", entity.CategoryFinishedGood)

	// 破坏组件表，使子行写入必然失败
	if err := db.Exec("ALTER TABLE order_components DROP COLUMN quantity_required").Error; err != nil {
		t.Fatalf("alter table: %v", err)
	}

	repo := NewOrderRepository(db)
	order := newTestOrder(product.ID, user.ID, 3)
	audit := &entity.AuditLog{
		ID:         uuid.New().String(),
		ActorID:    user.ID,
		ActorName:  user.Name,
		Action:     entity.AuditActionCreate,
		EntityType: "manufacturing_order",
	}

	if err := repo.CreateWithComponents(context.Background(), order, audit); err == nil {
		t.Fatal("Expected error when component insert fails")
	}

	var orderCount, auditCount int64
	db.Model(&entity.ManufacturingOrder{}).Count(&orderCount)
	db.Model(&entity.AuditLog{}).Count(&auditCount)
	if orderCount != 0 {
		t.Errorf("Expected no order rows after rollback, got %d", orderCount)
	}
	if auditCount != 0 {
		t.Errorf("Expected no audit rows after rollback, got %d", auditCount)
	}
}

// 并发创建下编号必须唯一
func TestCreateWithComponentsConcurrentReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.SeedTestUser(t, db, "Planner", "planner@test.com")
	product := testutil.SeedProduct(t, db, "CHAIR-01", "Wooden Chair", entity.CategoryFinishedGood)

	repo := NewOrderRepository(db)

	const n = 10
	refs := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := newTestOrder(product.ID, user.ID, float64(i+1))
			errs[i] = repo.CreateWithComponents(context.Background(), order, nil)
			refs[i] = order.Reference
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("Create %d: %v", i, errs[i])
		}
		if seen[refs[i]] {
			t.Errorf("Duplicate reference %s", refs[i])
		}
		seen[refs[i]] = true
	}
}

func TestNextReferenceMonotonic(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var prev string
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 5; i++ {
			ref, err := NextReference(tx)
			if err != nil {
				return err
			}
			if prev != "" && ref <= prev {
				return fmt.Errorf("reference %s not greater than %s", ref, prev)
			}
			prev = ref
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestOrderListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.SeedTestUser(t, db, "Planner", "planner@test.com")
	product := testutil.SeedProduct(t, db, "CHAIR-01", "Wooden Chair", entity.CategoryFinishedGood)

	repo := NewOrderRepository(db)
	for i := 0; i < 3; i++ {
		order := newTestOrder(product.ID, user.ID, float64(i+1))
		if i == 2 {
			order.Status = entity.OrderStatusConfirmed
		}
		if err := repo.CreateWithComponents(context.Background(), order, nil); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	_, total, err := repo.List(context.Background(), OrderListParams{Status: entity.OrderStatusDraft})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 draft orders, got %d", total)
	}

	orders, total, err := repo.List(context.Background(), OrderListParams{Keyword: "Wooden"})
	if err != nil {
		t.Fatalf("List keyword: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Errorf("Expected 3 orders matching keyword, got total=%d len=%d", total, len(orders))
	}
}
