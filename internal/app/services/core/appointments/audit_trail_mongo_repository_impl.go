package appointments

import (
	"context"

	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditTrailMongoRepository only ever inserts and reads. There is no
// update or delete path for audit entries.
type AuditTrailMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditTrailMongoRepository(db *mongo.Client, dbName string) contracts.AuditTrailRepository {
	return &AuditTrailMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAuditTrails),
	}
}

func (r *AuditTrailMongoRepository) Record(ctx context.Context, entry *models.AuditTrail) (*models.AuditTrail, error) {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return entry, nil
}

func (r *AuditTrailMongoRepository) FindByAppointmentID(ctx context.Context, appointmentID string) ([]models.AuditTrail, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"appointmentId": appointmentID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.AuditTrail, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return entries, nil
}
