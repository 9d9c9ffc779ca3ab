package service

import (
	"math"
	"testing"

	"github.com/makerflow/mfg/internal/mfg/entity"
)

func chairBOM() *entity.BillOfMaterial {
	return &entity.BillOfMaterial{
		ID:        "bom-chair",
		Reference: "BOM-CHAIR-01",
		ProductID: "prod-chair",
		Version:   "v1",
		Status:    entity.BOMStatusActive,
		Components: []entity.BOMComponent{
			{ComponentID: "prod-leg", ComponentSKU: "LEG-01", ComponentName: "Chair Leg", Quantity: 4, Unit: "pcs", Sequence: 1},
			{ComponentID: "prod-seat", ComponentSKU: "SEAT-01", ComponentName: "Seat Board", Quantity: 1, Unit: "pcs", Sequence: 2},
			{ComponentID: "prod-screw", ComponentSKU: "SCR-01", ComponentName: "Wood Screw", Quantity: 8, Unit: "pcs", Sequence: 3},
		},
	}
}

func TestExpandComponentsScalesQuantities(t *testing.T) {
	bom := chairBOM()

	components := ExpandComponents(bom, 5)

	if len(components) != 3 {
		t.Fatalf("Expected 3 component lines, got %d", len(components))
	}

	expected := []float64{20, 5, 40}
	for i, want := range expected {
		if components[i].QuantityRequired != want {
			t.Errorf("Line %d: expected quantity_required %v, got %v", i, want, components[i].QuantityRequired)
		}
	}
}

func TestExpandComponentsPreservesOrderAndIdentity(t *testing.T) {
	bom := chairBOM()

	components := ExpandComponents(bom, 2)

	for i, item := range bom.Components {
		got := components[i]
		if got.ComponentID != item.ComponentID {
			t.Errorf("Line %d: expected component %s, got %s", i, item.ComponentID, got.ComponentID)
		}
		if got.ComponentSKU != item.ComponentSKU || got.ComponentName != item.ComponentName {
			t.Errorf("Line %d: component identity not carried over: %+v", i, got)
		}
		if got.Sequence != item.Sequence {
			t.Errorf("Line %d: expected sequence %d, got %d", i, item.Sequence, got.Sequence)
		}
		if got.Unit != item.Unit {
			t.Errorf("Line %d: expected unit %s, got %s", i, item.Unit, got.Unit)
		}
		if got.ID == "" {
			t.Errorf("Line %d: expected generated id", i)
		}
	}
}

func TestExpandComponentsFractionalQuantities(t *testing.T) {
	bom := &entity.BillOfMaterial{
		Components: []entity.BOMComponent{
			{ComponentID: "prod-paint", ComponentSKU: "PAINT-01", ComponentName: "Varnish", Quantity: 0.25, Unit: "l", Sequence: 1},
		},
	}

	components := ExpandComponents(bom, 3)

	if len(components) != 1 {
		t.Fatalf("Expected 1 component line, got %d", len(components))
	}
	if math.Abs(components[0].QuantityRequired-0.75) > 1e-9 {
		t.Errorf("Expected quantity_required 0.75, got %v", components[0].QuantityRequired)
	}
}

func TestExpandComponentsEmptyBOM(t *testing.T) {
	bom := &entity.BillOfMaterial{}

	components := ExpandComponents(bom, 10)

	if len(components) != 0 {
		t.Errorf("Expected no component lines for empty BOM, got %d", len(components))
	}
}
