package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&UnitOfMeasure{},
		&Warehouse{},
		&Item{},
		&ItemUnitConversion{},
		&StockMovement{},
		&Supplier{},
		&ItemSupplier{},
		&TaxConfiguration{},
		&PurchaseOrder{},
		&PurchaseOrderLine{},
		&Truck{},
		&ProductTaxonomy{},
		&Delivery{},
		&CustomerAccount{},
	)
}
