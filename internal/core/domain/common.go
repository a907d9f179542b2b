package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy/LastUpdatedBy are opaque user references supplied by the caller;
// user management itself lives outside this service.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
