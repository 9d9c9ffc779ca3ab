package service

import (
	"github.com/makerflow/mfg/internal/mfg/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Product *ProductService
	BOM     *BOMService
	Order   *OrderService
	Stock   *StockService
	Audit   *AuditService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client) *Services {
	productSvc := NewProductService(repos.Product, rdb)
	bomSvc := NewBOMService(repos.BOM, repos.Product)
	return &Services{
		Product: productSvc,
		BOM:     bomSvc,
		Order:   NewOrderService(repos.Order, repos.User, productSvc, bomSvc, db),
		Stock:   NewStockService(repos.Stock),
		Audit:   NewAuditService(repos.Audit),
	}
}
