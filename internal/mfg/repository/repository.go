package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	User    *UserRepository
	Product *ProductRepository
	BOM     *BOMRepository
	Order   *OrderRepository
	Stock   *StockRepository
	Audit   *AuditRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Product: NewProductRepository(db),
		BOM:     NewBOMRepository(db),
		Order:   NewOrderRepository(db),
		Stock:   NewStockRepository(db),
		Audit:   NewAuditRepository(db),
	}
}
