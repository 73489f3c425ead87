package constvars

const (
	MongoCollectionHolds          = "booking_holds"
	MongoCollectionAppointments   = "appointments"
	MongoCollectionClinics        = "clinics"
	MongoCollectionServiceTypes   = "service_types"
	MongoCollectionClinicSettings = "clinic_settings"
	MongoCollectionAuditEvents    = "audit_events"
)
