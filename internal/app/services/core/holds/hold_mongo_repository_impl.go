package holds

import (
	"context"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HoldMongoRepository struct {
	Collection *mongo.Collection
}

func NewHoldMongoRepository(db *mongo.Client, dbName string) contracts.HoldRepository {
	return &HoldMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionHolds),
	}
}

func (r *HoldMongoRepository) CreateHold(ctx context.Context, hold *models.Hold) (*models.Hold, error) {
	if hold.ID == "" {
		hold.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	hold.CreatedAt = now
	hold.UpdatedAt = now

	_, err := r.Collection.InsertOne(ctx, hold)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return hold, nil
}

func (r *HoldMongoRepository) FindByID(ctx context.Context, tenantID, holdID string) (*models.Hold, error) {
	var hold models.Hold
	err := r.Collection.FindOne(ctx, bson.M{"_id": holdID, "tenantId": tenantID}).Decode(&hold)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &hold, nil
}

func (r *HoldMongoRepository) FindByIdempotencyKey(ctx context.Context, tenantID, clinicID, idempotencyKey string) (*models.Hold, error) {
	var hold models.Hold
	filter := bson.M{
		"tenantId":       tenantID,
		"clinicId":       clinicID,
		"idempotencyKey": idempotencyKey,
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&hold)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &hold, nil
}

func (r *HoldMongoRepository) FindActiveByClinic(ctx context.Context, tenantID, clinicID string) ([]models.Hold, error) {
	filter := bson.M{
		"tenantId": tenantID,
		"clinicId": clinicID,
		"status":   bson.M{"$in": []models.HoldStatus{models.HoldStatusPending, models.HoldStatusConfirmed}},
	}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var holds []models.Hold
	if err := cursor.All(ctx, &holds); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return holds, nil
}

// FindOverlapping searches the whole tenant, not just one clinic, so a
// professional cannot be double-booked across clinics.
func (r *HoldMongoRepository) FindOverlapping(ctx context.Context, query *contracts.HoldOverlapQuery) ([]models.Hold, error) {
	filter := bson.M{
		"tenantId":       query.TenantID,
		"professionalId": query.ProfessionalID,
		"start":          bson.M{"$lt": query.End},
		"end":            bson.M{"$gt": query.Start},
	}
	if len(query.Statuses) > 0 {
		filter["status"] = bson.M{"$in": query.Statuses}
	}
	if query.ExcludeHoldID != "" {
		filter["_id"] = bson.M{"$ne": query.ExcludeHoldID}
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var holds []models.Hold
	if err := cursor.All(ctx, &holds); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return holds, nil
}

// UpdateStatus is a compare-and-set: the update applies only while the hold
// still has fromStatus, which keeps concurrent confirmations from both
// winning. A nil result with nil error means the guard failed.
func (r *HoldMongoRepository) UpdateStatus(ctx context.Context, holdID string, fromStatus, toStatus models.HoldStatus, patch *models.Hold) (*models.Hold, error) {
	now := time.Now().UTC()
	set := bson.M{
		"status":    toStatus,
		"updatedAt": now,
	}
	if patch != nil {
		if patch.AppointmentID != "" {
			set["appointmentId"] = patch.AppointmentID
		}
		if patch.CancelReason != "" {
			set["cancelReason"] = patch.CancelReason
		}
		if patch.LastModifiedBy != "" {
			set["lastModifiedBy"] = patch.LastModifiedBy
		}
		if patch.Metadata.Confirmation != nil || patch.Metadata.Overbooking != nil || patch.Metadata.Extra != nil {
			set["metadata"] = patch.Metadata
		}
	}
	switch toStatus {
	case models.HoldStatusConfirmed:
		set["confirmedAt"] = now
	case models.HoldStatusCancelled:
		set["cancelledAt"] = now
	case models.HoldStatusExpired:
		set["expiredAt"] = now
	}

	var updated models.Hold
	err := r.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": holdID, "status": fromStatus},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *HoldMongoRepository) PatchMetadata(ctx context.Context, holdID string, metadata models.HoldMetadata) (*models.Hold, error) {
	var updated models.Hold
	err := r.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": holdID},
		bson.M{"$set": bson.M{"metadata": metadata, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *HoldMongoRepository) UpdatePaymentStatus(ctx context.Context, holdID string, status models.PaymentStatus) error {
	_, err := r.Collection.UpdateOne(
		ctx,
		bson.M{"_id": holdID},
		bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *HoldMongoRepository) FindDuePending(ctx context.Context, now time.Time, limit int) ([]models.Hold, error) {
	filter := bson.M{
		"status": models.HoldStatusPending,
		"$or": []bson.M{
			{"ttlExpiresAt": bson.M{"$lte": now}},
			{"start": bson.M{"$lte": now}},
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "ttlExpiresAt", Value: 1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var holds []models.Hold
	if err := cursor.All(ctx, &holds); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return holds, nil
}
