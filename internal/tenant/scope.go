package tenant

import "gorm.io/gorm"

// Scope restricts a query to one tenant. Every repository query goes through
// this; the company id itself comes from the auth middleware.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
