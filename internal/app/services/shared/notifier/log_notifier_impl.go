package notifier

import (
	"context"
	"sync"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// logNotifier is the stand-in for the messaging channel integration. It
// records what would be sent so the reconciliation flow stays observable
// until the real channel lands.
type logNotifier struct {
	Log *zap.Logger
}

var (
	logNotifierInstance contracts.PaymentNotifier
	onceLogNotifier     sync.Once
)

func NewLogNotifier(logger *zap.Logger) contracts.PaymentNotifier {
	onceLogNotifier.Do(func() {
		logNotifierInstance = &logNotifier{Log: logger}
	})
	return logNotifierInstance
}

func (n *logNotifier) NotifyPaymentEvent(ctx context.Context, event *models.PaymentLifecycleEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	n.Log.Info("Payment notification dispatched",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		zap.String(constvars.LoggingEventKey, string(event.Kind)),
		zap.String(constvars.LoggingPaymentStatusKey, string(event.NewStatus)),
	)
	return nil
}
