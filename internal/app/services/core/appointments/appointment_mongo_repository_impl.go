package appointments

import (
	"context"
	"fmt"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if appointment.ID == "" {
		appointment.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return appointment, nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return r.findOne(ctx, bson.M{"_id": appointmentID})
}

func (r *AppointmentMongoRepository) FindByHoldID(ctx context.Context, holdID string) (*models.Appointment, error) {
	return r.findOne(ctx, bson.M{"holdId": holdID})
}

func (r *AppointmentMongoRepository) FindByPaymentTransactionID(ctx context.Context, transactionID string) (*models.Appointment, error) {
	return r.findOne(ctx, bson.M{"paymentTransactionId": transactionID})
}

func (r *AppointmentMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindOverlapping(ctx context.Context, query *contracts.AppointmentOverlapQuery) ([]models.Appointment, error) {
	filter := bson.M{
		"tenantId":       query.TenantID,
		"professionalId": query.ProfessionalID,
		"start":          bson.M{"$lt": query.End},
		"end":            bson.M{"$gt": query.Start},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) UpdatePaymentStatus(ctx context.Context, appointmentID string, status models.PaymentStatus) error {
	_, err := r.Collection.UpdateOne(
		ctx,
		bson.M{"_id": appointmentID},
		bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) PatchMetadata(ctx context.Context, appointmentID string, patch map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for key, value := range patch {
		set[fmt.Sprintf("metadata.%s", key)] = value
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": appointmentID}, bson.M{"$set": set})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
