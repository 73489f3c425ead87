package payments

import (
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// DecodeLedger extracts the payment ledger from an appointment metadata bag.
// A missing or nil ledger decodes to an empty ledger in the given currency,
// so callers never branch on first-write.
func DecodeLedger(metadata map[string]interface{}, defaultCurrency string) (*models.PaymentLedger, error) {
	raw, exists := metadata[constvars.MetadataKeyPaymentLedger]
	if !exists || raw == nil {
		return &models.PaymentLedger{Currency: defaultCurrency}, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	var ledger models.PaymentLedger
	if err := json.Unmarshal(encoded, &ledger); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if ledger.Currency == "" {
		ledger.Currency = defaultCurrency
	}
	return &ledger, nil
}

// EncodeLedger renders the ledger back into the schema-free form the
// appointment metadata bag stores. The typed model never crosses the
// persistence boundary directly.
func EncodeLedger(ledger *models.PaymentLedger) (map[string]interface{}, error) {
	encoded, err := json.Marshal(ledger)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	var bag map[string]interface{}
	if err := json.Unmarshal(encoded, &bag); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return bag, nil
}
