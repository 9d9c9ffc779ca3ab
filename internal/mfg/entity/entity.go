package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移全部表
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// 基础数据
		&User{},
		&Product{},

		// BOM
		&BillOfMaterial{},
		&BOMComponent{},
		&BOMOperation{},

		// 生产
		&ManufacturingOrder{},
		&OrderComponent{},
		&WorkOrder{},

		// 库存
		&StockLevel{},
		&StockEntry{},

		// 审计
		&AuditLog{},
	); err != nil {
		return err
	}

	// 订单编号序列，并发创建下保证唯一且单调
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS mo_reference_seq START 1").Error
}
