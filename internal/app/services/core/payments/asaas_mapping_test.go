package payments

import (
	"testing"

	"onterapi-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestMapAsaasToInternalStatus(t *testing.T) {
	testCases := []struct {
		name          string
		gatewayStatus string
		eventName     string
		expected      models.PaymentStatus
		expectMapped  bool
	}{
		{name: "received maps to approved", gatewayStatus: "RECEIVED", expected: models.PaymentStatusApproved, expectMapped: true},
		{name: "confirmed maps to approved", gatewayStatus: "CONFIRMED", expected: models.PaymentStatusApproved, expectMapped: true},
		{name: "received in cash maps to approved", gatewayStatus: "RECEIVED_IN_CASH", expected: models.PaymentStatusApproved, expectMapped: true},
		{name: "settled maps to settled", gatewayStatus: "SETTLED", expected: models.PaymentStatusSettled, expectMapped: true},
		{name: "anticipated maps to settled", gatewayStatus: "ANTECIPATED", expected: models.PaymentStatusSettled, expectMapped: true},
		{name: "refunded maps to refunded", gatewayStatus: "REFUNDED", expected: models.PaymentStatusRefunded, expectMapped: true},
		{name: "chargeback requested maps to chargeback", gatewayStatus: "CHARGEBACK_REQUESTED", expected: models.PaymentStatusChargeback, expectMapped: true},
		{name: "dunning prefix maps to approved", gatewayStatus: "DUNNING_REQUESTED", expected: models.PaymentStatusApproved, expectMapped: true},
		{name: "overdue maps to failed", gatewayStatus: "OVERDUE", expected: models.PaymentStatusFailed, expectMapped: true},
		{name: "canceled maps to failed", gatewayStatus: "CANCELED", expected: models.PaymentStatusFailed, expectMapped: true},
		{name: "pending prefix maps to failed", gatewayStatus: "PENDING", expected: models.PaymentStatusFailed, expectMapped: true},
		{name: "event name fallback when status unknown", gatewayStatus: "", eventName: "PAYMENT_REFUNDED", expected: models.PaymentStatusRefunded, expectMapped: true},
		{name: "status takes precedence over event", gatewayStatus: "RECEIVED", eventName: "PAYMENT_REFUNDED", expected: models.PaymentStatusApproved, expectMapped: true},
		{name: "unknown status and event unmapped", gatewayStatus: "SOMETHING_NEW", eventName: "PAYMENT_SOMETHING_NEW", expectMapped: false},
		{name: "empty input unmapped", expectMapped: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			status, mapped := MapAsaasToInternalStatus(testCase.gatewayStatus, testCase.eventName)
			assert.Equal(t, testCase.expectMapped, mapped)
			if testCase.expectMapped {
				assert.Equal(t, testCase.expected, status)
			}
		})
	}
}

func TestIsStatusAdvance(t *testing.T) {
	testCases := []struct {
		name    string
		current models.PaymentStatus
		next    models.PaymentStatus
		advance bool
	}{
		{name: "unset to approved", current: "", next: models.PaymentStatusApproved, advance: true},
		{name: "approved to settled", current: models.PaymentStatusApproved, next: models.PaymentStatusSettled, advance: true},
		{name: "settled to refunded", current: models.PaymentStatusSettled, next: models.PaymentStatusRefunded, advance: true},
		{name: "refunded to chargeback", current: models.PaymentStatusRefunded, next: models.PaymentStatusChargeback, advance: true},
		{name: "failed to approved", current: models.PaymentStatusFailed, next: models.PaymentStatusApproved, advance: true},
		{name: "settled back to approved", current: models.PaymentStatusSettled, next: models.PaymentStatusApproved, advance: false},
		{name: "approved to failed", current: models.PaymentStatusApproved, next: models.PaymentStatusFailed, advance: false},
		{name: "chargeback back to refunded", current: models.PaymentStatusChargeback, next: models.PaymentStatusRefunded, advance: false},
		{name: "same status", current: models.PaymentStatusApproved, next: models.PaymentStatusApproved, advance: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.advance, IsStatusAdvance(testCase.current, testCase.next))
		})
	}
}

func TestLifecycleKindForStatus(t *testing.T) {
	assert.Equal(t, models.PaymentEventSettled, LifecycleKindForStatus(models.PaymentStatusSettled))
	assert.Equal(t, models.PaymentEventRefunded, LifecycleKindForStatus(models.PaymentStatusRefunded))
	assert.Equal(t, models.PaymentEventChargeback, LifecycleKindForStatus(models.PaymentStatusChargeback))
	assert.Equal(t, models.PaymentEventStatusChanged, LifecycleKindForStatus(models.PaymentStatusApproved))
	assert.Equal(t, models.PaymentEventStatusChanged, LifecycleKindForStatus(models.PaymentStatusFailed))
}
