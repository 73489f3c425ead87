package models

import (
	"time"
)

type ServiceType struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	ClinicID          string    `bson:"clinicId" json:"clinicId"`
	Name              string    `bson:"name" json:"name"`
	DurationMinutes   int       `bson:"durationMinutes" json:"durationMinutes"`
	MinAdvanceMinutes int       `bson:"minAdvanceMinutes" json:"minAdvanceMinutes"`
	PriceCents        int64     `bson:"priceCents,omitempty" json:"priceCents,omitempty"`
	Active            bool      `bson:"active" json:"active"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}
