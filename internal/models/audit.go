// internal/models/audit.go
package models

type AuditLog struct {
	BaseModel
	UserEmail    string `json:"user_email" gorm:"size:255;index"`
	Action       string `json:"action" gorm:"size:255;not null"`
	ResourceType string `json:"resource_type" gorm:"size:64;index"`
	ResourceKey  string `json:"resource_key" gorm:"size:255"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"size:512"`
	NewValues    JSONB  `json:"new_values,omitempty" gorm:"type:jsonb"`
}
