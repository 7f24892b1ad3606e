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

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if appointment.ID == "" {
		appointment.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return appointment, nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	if _, err := primitive.ObjectIDFromHex(appointmentID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) Update(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	filter := bson.M{"_id": appointment.ID}
	update := bson.M{"$set": bson.M{
		"status":        appointment.Status,
		"paymentStatus": appointment.PaymentStatus,
		"reason":        appointment.Reason,
		"updatedAt":     appointment.UpdatedAt,
	}}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return appointment, nil
}
