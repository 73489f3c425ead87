package clinics

import (
	"context"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// clinicSettingsDocument is one applied settings version. The payload is
// stored as the JSON the admin tooling applied, so each section owns its own
// schema.
type clinicSettingsDocument struct {
	ID        string    `bson:"_id,omitempty"`
	ClinicID  string    `bson:"clinicId"`
	Section   string    `bson:"section"`
	Version   int       `bson:"version"`
	Payload   string    `bson:"payload"`
	AppliedAt time.Time `bson:"appliedAt"`
}

type ClinicSettingsMongoRepository struct {
	Collection *mongo.Collection
}

func NewClinicSettingsMongoRepository(db *mongo.Client, dbName string) contracts.ClinicSettingsRepository {
	return &ClinicSettingsMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionClinicSettings),
	}
}

func (r *ClinicSettingsMongoRepository) FindLatestPaymentSettings(ctx context.Context, clinicID string) (*models.PaymentSettings, error) {
	var document clinicSettingsDocument
	err := r.Collection.FindOne(
		ctx,
		bson.M{"clinicId": clinicID, "section": constvars.SettingsSectionPayments},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}),
	).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var settings models.PaymentSettings
	if err := json.Unmarshal([]byte(document.Payload), &settings); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &settings, nil
}
