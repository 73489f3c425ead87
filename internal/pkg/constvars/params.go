package constvars

const (
	URLParamHoldID        = "hold_id"
	URLParamAppointmentID = "appointment_id"
)
