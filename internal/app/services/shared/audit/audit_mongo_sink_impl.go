package audit

import (
	"context"
	"sync"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	auditSinkInstance contracts.AuditSink
	onceAuditSink     sync.Once
)

type mongoAuditSink struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewMongoAuditSink(db *mongo.Client, dbName string, logger *zap.Logger) contracts.AuditSink {
	onceAuditSink.Do(func() {
		instance := &mongoAuditSink{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionAuditEvents),
			Log:        logger,
		}
		auditSinkInstance = instance
	})
	return auditSinkInstance
}

// Register writes the entry and swallows failures. Audit records must never
// fail the operation that produced them.
func (s *mongoAuditSink) Register(ctx context.Context, entry *models.AuditEntry) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	_, err := s.Collection.InsertOne(ctx, entry)
	if err != nil {
		s.Log.Error("mongoAuditSink.Register error inserting audit entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, entry.Event),
			zap.Error(err),
		)
		return
	}

	s.Log.Info("mongoAuditSink.Register recorded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, entry.Event),
		zap.String(constvars.LoggingTenantIDKey, entry.TenantID),
	)
}
