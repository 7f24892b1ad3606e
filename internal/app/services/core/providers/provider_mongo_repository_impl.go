package providers

import (
	"context"
	"time"

	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// providerDocument is the persisted shape. The fee is stored as a
// decimal string so no float rounding ever touches money.
type providerDocument struct {
	ID              string    `bson:"_id,omitempty"`
	UserID          string    `bson:"userId"`
	FullName        string    `bson:"fullName"`
	Specialty       string    `bson:"specialty"`
	ConsultationFee string    `bson:"consultationFee"`
	Verified        bool      `bson:"verified"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func (d *providerDocument) toModel() (*models.Provider, error) {
	fee, err := decimal.NewFromString(d.ConsultationFee)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &models.Provider{
		ID:              d.ID,
		UserID:          d.UserID,
		FullName:        d.FullName,
		Specialty:       d.Specialty,
		ConsultationFee: fee,
		Verified:        d.Verified,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

type ProviderMongoRepository struct {
	Collection *mongo.Collection
}

func NewProviderMongoRepository(db *mongo.Client, dbName string) contracts.ProviderRepository {
	return &ProviderMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionProviders),
	}
}

func (r *ProviderMongoRepository) FindByID(ctx context.Context, providerID string) (*models.Provider, error) {
	if _, err := primitive.ObjectIDFromHex(providerID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var doc providerDocument
	err := r.Collection.FindOne(ctx, bson.M{"_id": providerID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel()
}
