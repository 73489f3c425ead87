package models

import (
	"time"
)

// AuditEntry is a fire-and-forget trace of a state transition. Failures to
// record one are logged and never propagated.
type AuditEntry struct {
	ID          string                 `bson:"_id,omitempty" json:"id"`
	TenantID    string                 `bson:"tenantId" json:"tenantId"`
	ClinicID    string                 `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	Event       string                 `bson:"event" json:"event"`
	PerformedBy string                 `bson:"performedBy,omitempty" json:"performedBy,omitempty"`
	Detail      map[string]interface{} `bson:"detail,omitempty" json:"detail,omitempty"`
	RecordedAt  time.Time              `bson:"recordedAt" json:"recordedAt"`
}
