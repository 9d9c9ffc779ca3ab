package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/repository"
	"github.com/makerflow/mfg/internal/mfg/service"
	"github.com/makerflow/mfg/internal/mfg/testutil"
	"github.com/makerflow/mfg/internal/middleware"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	user := testutil.SeedTestUser(t, db, "Test Planner", "planner@test.com")

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, nil)
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	products := api.Group("/products")
	products.GET("", handlers.Product.List)
	products.POST("", middleware.RequireRole("planner"), handlers.Product.Create)
	products.GET("/:id", handlers.Product.Get)
	products.GET("/:id/boms", handlers.Product.ListBOMs)

	boms := api.Group("/boms")
	boms.POST("", middleware.RequireRole("planner"), handlers.BOM.Create)
	boms.GET("/:id", handlers.BOM.Get)

	token := testutil.GenerateTestToken(user.ID, user.Name, user.Email, []string{"planner"})
	return router, db, token
}

func TestProductCreate(t *testing.T) {
	router, _, token := setupProductTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/products", map[string]interface{}{
		"sku":      "CHAIR-01",
		"name":     "Wooden Chair",
		"category": "finished_good",
		"unit":     "pcs",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	product := resp["product"].(map[string]interface{})
	if product["sku"] != "CHAIR-01" || product["status"] != "active" {
		t.Errorf("Unexpected product: %v", product)
	}
}

func TestProductCreateValidation(t *testing.T) {
	router, _, token := setupProductTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/products", map[string]interface{}{
		"sku":      "",
		"name":     "Nameless",
		"category": "widget",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	details, _ := resp["details"].([]interface{})
	if len(details) != 2 {
		t.Errorf("Expected 2 details (sku, category), got %v", resp["details"])
	}
}

func TestProductCreateRequiresPlannerRole(t *testing.T) {
	router, db, _ := setupProductTest(t)
	viewer := testutil.SeedTestUser(t, db, "Viewer", "viewer@test.com")
	viewerToken := testutil.GenerateTestToken(viewer.ID, viewer.Name, viewer.Email, []string{"viewer"})

	body := map[string]interface{}{
		"sku":      "CHAIR-02",
		"name":     "Metal Chair",
		"category": "finished_good",
	}

	w := testutil.DoRequest(router, "POST", "/api/v1/products", body, viewerToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for viewer role, got %d: %s", w.Code, w.Body.String())
	}

	// admin角色放行
	admin := testutil.SeedTestUser(t, db, "Admin", "admin@test.com")
	adminToken := testutil.GenerateTestToken(admin.ID, admin.Name, admin.Email, []string{"admin"})
	w = testutil.DoRequest(router, "POST", "/api/v1/products", body, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 for admin role, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProductListSearchAndCategory(t *testing.T) {
	router, db, token := setupProductTest(t)
	testutil.SeedProduct(t, db, "CHAIR-01", "Wooden Chair", entity.CategoryFinishedGood)
	testutil.SeedProduct(t, db, "TABLE-01", "Wooden Table", entity.CategoryFinishedGood)
	testutil.SeedProduct(t, db, "LEG-01", "Chair Leg", entity.CategoryRawMaterial)

	w := testutil.DoRequest(router, "GET", "/api/v1/products?search=wooden", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("Expected 2 products matching 'wooden', got %d", len(items))
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/products?category=raw_material", nil, token)
	resp = testutil.ParseResponse(w)
	items = resp["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("Expected 1 raw material, got %d", len(items))
	}
	pagination := resp["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 1 {
		t.Errorf("Expected total 1, got %v", pagination["total"])
	}
}

func TestProductGetNotFound(t *testing.T) {
	router, _, token := setupProductTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/products/00000000-0000-0000-0000-000000000000", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestBOMCreateAndListByProduct(t *testing.T) {
	router, db, token := setupProductTest(t)
	chair := testutil.SeedProduct(t, db, "CHAIR-01", "Wooden Chair", entity.CategoryFinishedGood)
	leg := testutil.SeedProduct(t, db, "LEG-01", "Chair Leg", entity.CategoryRawMaterial)

	w := testutil.DoRequest(router, "POST", "/api/v1/boms", map[string]interface{}{
		"reference":  "BOM-CHAIR-01",
		"product_id": chair.ID,
		"components": []map[string]interface{}{
			{"component_id": leg.ID, "quantity": 4, "unit": "pcs"},
		},
		"operations": []map[string]interface{}{
			{"name": "Assemble", "workstation": "bench-1", "duration_minutes": 45},
		},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	bom := resp["bom"].(map[string]interface{})
	if bom["status"] != "active" {
		t.Errorf("Expected active BOM, got %v", bom["status"])
	}
	components := bom["components"].([]interface{})
	if len(components) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(components))
	}
	// 组件行应冗余产品标识
	comp := components[0].(map[string]interface{})
	if comp["component_sku"] != "LEG-01" || comp["component_name"] != "Chair Leg" {
		t.Errorf("Expected denormalized component identity, got %v", comp)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/products/"+chair.ID+"/boms", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	boms := resp["boms"].([]interface{})
	if len(boms) != 1 {
		t.Errorf("Expected 1 BOM for product, got %d", len(boms))
	}
}
