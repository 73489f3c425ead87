package archive

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	webhookArchiveInstance contracts.WebhookArchive
	onceWebhookArchive     sync.Once
)

type minioWebhookArchive struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

// NewMinioWebhookArchive stores raw gateway payloads in object storage so
// chargeback disputes can be answered with the exact bytes received.
func NewMinioWebhookArchive(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.WebhookArchive {
	onceWebhookArchive.Do(func() {
		instance := &minioWebhookArchive{
			MinioClient: minioClient,
			BucketName:  bucketName,
			Log:         logger,
		}
		webhookArchiveInstance = instance
	})
	return webhookArchiveInstance
}

func (a *minioWebhookArchive) StorePayload(ctx context.Context, provider, transactionID string, payload []byte) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	objectName := fmt.Sprintf("%s/%s/%s.json", provider, transactionID, time.Now().UTC().Format(time.RFC3339Nano))
	_, err := a.MinioClient.PutObject(ctx, a.BucketName, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		a.Log.Error("minioWebhookArchive.StorePayload error creating object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, a.BucketName)
	}

	a.Log.Info("minioWebhookArchive.StorePayload stored",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
		zap.String(constvars.LoggingDataKey, objectName),
	)
	return objectName, nil
}
