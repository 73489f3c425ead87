package models

import (
	"time"
)

// HoldSettings controls how a clinic accepts booking holds.
type HoldSettings struct {
	MinAdvanceMinutes int  `bson:"minAdvanceMinutes" json:"minAdvanceMinutes"`
	AllowOverbooking  bool `bson:"allowOverbooking" json:"allowOverbooking"`
	TTLMinutes        int  `bson:"ttlMinutes" json:"ttlMinutes"`
}

type Clinic struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	TenantID     string       `bson:"tenantId" json:"tenantId"`
	Name         string       `bson:"name" json:"name"`
	Timezone     string       `bson:"timezone,omitempty" json:"timezone,omitempty"`
	HoldSettings HoldSettings `bson:"holdSettings" json:"holdSettings"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}
