package constvars

const (
	ResponseHoldConfirmed       = "Booking hold confirmed"
	ResponseOverbookingReviewed = "Overbooking review recorded"
	ResponseWebhookAccepted     = "Webhook accepted"
	ResponseLedgerRetrieved     = "Payment ledger retrieved"
)
