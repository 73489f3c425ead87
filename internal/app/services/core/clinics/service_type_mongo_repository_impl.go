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

type ServiceTypeMongoRepository struct {
	Collection *mongo.Collection
}

func NewServiceTypeMongoRepository(db *mongo.Client, dbName string) contracts.ServiceTypeRepository {
	return &ServiceTypeMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionServiceTypes),
	}
}

func (r *ServiceTypeMongoRepository) FindByID(ctx context.Context, clinicID, serviceTypeID string) (*models.ServiceType, error) {
	var serviceType models.ServiceType
	err := r.Collection.FindOne(ctx, bson.M{"_id": serviceTypeID, "clinicId": clinicID}).Decode(&serviceType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &serviceType, nil
}
