package clinics

import (
	"context"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClinicMongoRepository struct {
	Collection *mongo.Collection
}

func NewClinicMongoRepository(db *mongo.Client, dbName string) contracts.ClinicRepository {
	return &ClinicMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionClinics),
	}
}

func (r *ClinicMongoRepository) FindByTenant(ctx context.Context, tenantID, clinicID string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.Collection.FindOne(ctx, bson.M{"_id": clinicID, "tenantId": tenantID}).Decode(&clinic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &clinic, nil
}
