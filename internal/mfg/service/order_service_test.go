package service

import (
	"strings"
	"testing"
	"time"

	"github.com/makerflow/mfg/internal/mfg/entity"
)

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		ProductSearch:    "Wooden Chair",
		Quantity:         5,
		PlannedStartDate: "2026-09-10",
		PlannedEndDate:   "2026-09-20",
	}
}

func TestValidateCreateOrderValid(t *testing.T) {
	start, end, details := validateCreateOrder(validRequest())

	if len(details) != 0 {
		t.Fatalf("Expected no validation details, got %v", details)
	}
	if start.Format("2006-01-02") != "2026-09-10" {
		t.Errorf("Expected start 2026-09-10, got %v", start)
	}
	if end.Format("2006-01-02") != "2026-09-20" {
		t.Errorf("Expected end 2026-09-20, got %v", end)
	}
}

func TestValidateCreateOrderAcceptsRFC3339(t *testing.T) {
	req := validRequest()
	req.PlannedStartDate = "2026-09-10T08:00:00Z"

	_, _, details := validateCreateOrder(req)
	if len(details) != 0 {
		t.Errorf("Expected RFC3339 dates accepted, got %v", details)
	}
}

func TestValidateCreateOrderCollectsAllDetails(t *testing.T) {
	req := CreateOrderRequest{
		ProductSearch:    "  ",
		Quantity:         0,
		PlannedStartDate: "",
		PlannedEndDate:   "not-a-date",
		Priority:         "asap",
	}

	_, _, details := validateCreateOrder(req)

	if len(details) != 5 {
		t.Fatalf("Expected 5 validation details, got %d: %v", len(details), details)
	}
	joined := strings.Join(details, "; ")
	for _, want := range []string{"product_search", "quantity", "planned_start_date", "planned_end_date", "priority"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected a detail mentioning %q, got %v", want, details)
		}
	}
}

func TestValidateCreateOrderQuantity(t *testing.T) {
	for _, qty := range []float64{-2, 0, 2.5} {
		req := validRequest()
		req.Quantity = qty

		_, _, details := validateCreateOrder(req)
		if len(details) != 1 || !strings.Contains(details[0], "quantity must be a positive integer") {
			t.Errorf("Quantity %v: expected single quantity detail, got %v", qty, details)
		}
	}

	req := validRequest()
	req.Quantity = 3
	if _, _, details := validateCreateOrder(req); len(details) != 0 {
		t.Errorf("Expected whole quantity accepted, got %v", details)
	}
}

func TestValidateCreateOrderStartAfterEnd(t *testing.T) {
	req := validRequest()
	req.PlannedStartDate = "2026-09-20"
	req.PlannedEndDate = "2026-09-10"

	_, _, details := validateCreateOrder(req)
	if len(details) != 1 || !strings.Contains(details[0], "planned_start_date must not be after") {
		t.Errorf("Expected date ordering detail, got %v", details)
	}
}

func TestValidateCreateOrderPriorities(t *testing.T) {
	for _, p := range []string{"", entity.OrderPriorityLow, entity.OrderPriorityNormal, entity.OrderPriorityHigh, entity.OrderPriorityUrgent} {
		req := validRequest()
		req.Priority = p
		if _, _, details := validateCreateOrder(req); len(details) != 0 {
			t.Errorf("Priority %q: expected valid, got %v", p, details)
		}
	}
}

func TestParsePlannedDate(t *testing.T) {
	got, err := parsePlannedDate("2026-01-15")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if _, err := parsePlannedDate("15/01/2026"); err == nil {
		t.Error("Expected error for non-ISO date")
	}
}
