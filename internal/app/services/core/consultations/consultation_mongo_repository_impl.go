package consultations

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// consultationDocument is the persisted shape of a consultation. All
// monetary amounts are stored as decimal strings.
type consultationDocument struct {
	ID                   string     `bson:"_id,omitempty"`
	ClientID             string     `bson:"clientId"`
	ClientEmail          string     `bson:"clientEmail"`
	ProviderID           string     `bson:"providerId"`
	ScheduledAt          time.Time  `bson:"scheduledAt"`
	Type                 string     `bson:"type"`
	Status               string     `bson:"status"`
	ConsultationFee      string     `bson:"consultationFee"`
	AppFee               string     `bson:"appFee"`
	TotalAmount          string     `bson:"totalAmount"`
	PaymentStatus        string     `bson:"paymentStatus"`
	PaymentMethod        string     `bson:"paymentMethod,omitempty"`
	PaymentTransactionID string     `bson:"paymentTransactionId,omitempty"`
	PaidAt               *time.Time `bson:"paidAt,omitempty"`
	ClientNotes          string     `bson:"clientNotes,omitempty"`
	ProviderNotes        string     `bson:"providerNotes,omitempty"`
	CreatedAt            time.Time  `bson:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt"`
}

func consultationToDocument(m *models.Consultation) *consultationDocument {
	return &consultationDocument{
		ID:                   m.ID,
		ClientID:             m.ClientID,
		ClientEmail:          m.ClientEmail,
		ProviderID:           m.ProviderID,
		ScheduledAt:          m.ScheduledAt,
		Type:                 string(m.Type),
		Status:               string(m.Status),
		ConsultationFee:      m.ConsultationFee.String(),
		AppFee:               m.AppFee.String(),
		TotalAmount:          m.TotalAmount.String(),
		PaymentStatus:        string(m.PaymentStatus),
		PaymentMethod:        string(m.PaymentMethod),
		PaymentTransactionID: m.PaymentTransactionID,
		PaidAt:               m.PaidAt,
		ClientNotes:          m.ClientNotes,
		ProviderNotes:        m.ProviderNotes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func (d *consultationDocument) toModel() (*models.Consultation, error) {
	consultationFee, err := decimal.NewFromString(d.ConsultationFee)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	appFee, err := decimal.NewFromString(d.AppFee)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	totalAmount, err := decimal.NewFromString(d.TotalAmount)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &models.Consultation{
		ID:                   d.ID,
		ClientID:             d.ClientID,
		ClientEmail:          d.ClientEmail,
		ProviderID:           d.ProviderID,
		ScheduledAt:          d.ScheduledAt,
		Type:                 models.ConsultationType(d.Type),
		Status:               models.ConsultationStatus(d.Status),
		ConsultationFee:      consultationFee,
		AppFee:               appFee,
		TotalAmount:          totalAmount,
		PaymentStatus:        models.ConsultationPaymentStatus(d.PaymentStatus),
		PaymentMethod:        models.PaymentMethod(d.PaymentMethod),
		PaymentTransactionID: d.PaymentTransactionID,
		PaidAt:               d.PaidAt,
		ClientNotes:          d.ClientNotes,
		ProviderNotes:        d.ProviderNotes,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}, nil
}

type ConsultationMongoRepository struct {
	Collection *mongo.Collection
}

func NewConsultationMongoRepository(db *mongo.Client, dbName string) contracts.ConsultationRepository {
	return &ConsultationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionConsultations),
	}
}

func (r *ConsultationMongoRepository) Create(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	doc := consultationToDocument(consultation)
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	consultation.ID = doc.ID
	return consultation, nil
}

func (r *ConsultationMongoRepository) FindByID(ctx context.Context, consultationID string) (*models.Consultation, error) {
	if _, err := primitive.ObjectIDFromHex(consultationID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var doc consultationDocument
	err := r.Collection.FindOne(ctx, bson.M{"_id": consultationID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel()
}

func (r *ConsultationMongoRepository) Update(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	doc := consultationToDocument(consultation)
	filter := bson.M{"_id": doc.ID}
	doc.ID = ""
	update := bson.M{"$set": doc}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return consultation, nil
}
