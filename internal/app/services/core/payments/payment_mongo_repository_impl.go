package payments

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

type paymentDocument struct {
	ID              string    `bson:"_id,omitempty"`
	ConsultationID  string    `bson:"consultationId"`
	Amount          string    `bson:"amount"`
	Currency        string    `bson:"currency"`
	Method          string    `bson:"method"`
	Status          string    `bson:"status"`
	ProviderShare   string    `bson:"providerShare"`
	PlatformFee     string    `bson:"platformFee"`
	GatewayRef      string    `bson:"gatewayRef,omitempty"`
	TransactionID   string    `bson:"transactionId,omitempty"`
	IdempotencyKey  string    `bson:"idempotencyKey,omitempty"`
	FailureReason   string    `bson:"failureReason,omitempty"`
	WebhookVerified bool      `bson:"webhookVerified"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func paymentToDocument(m *models.Payment) *paymentDocument {
	return &paymentDocument{
		ID:              m.ID,
		ConsultationID:  m.ConsultationID,
		Amount:          m.Amount.String(),
		Currency:        m.Currency,
		Method:          string(m.Method),
		Status:          string(m.Status),
		ProviderShare:   m.ProviderShare.String(),
		PlatformFee:     m.PlatformFee.String(),
		GatewayRef:      m.GatewayRef,
		TransactionID:   m.TransactionID,
		IdempotencyKey:  m.IdempotencyKey,
		FailureReason:   m.FailureReason,
		WebhookVerified: m.WebhookVerified,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (d *paymentDocument) toModel() (*models.Payment, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	providerShare, err := decimal.NewFromString(d.ProviderShare)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	platformFee, err := decimal.NewFromString(d.PlatformFee)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &models.Payment{
		ID:              d.ID,
		ConsultationID:  d.ConsultationID,
		Amount:          amount,
		Currency:        d.Currency,
		Method:          models.PaymentMethod(d.Method),
		Status:          models.PaymentRecordStatus(d.Status),
		ProviderShare:   providerShare,
		PlatformFee:     platformFee,
		GatewayRef:      d.GatewayRef,
		TransactionID:   d.TransactionID,
		IdempotencyKey:  d.IdempotencyKey,
		FailureReason:   d.FailureReason,
		WebhookVerified: d.WebhookVerified,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

// NewPaymentMongoRepository ensures the partial unique index on
// idempotencyKey so a retried submit can never insert a second record
// for the same logical payment.
func NewPaymentMongoRepository(db *mongo.Client, dbName string) (contracts.PaymentRepository, error) {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionPayments)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "idempotencyKey", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"idempotencyKey": bson.M{"$type": "string"}}),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, exceptions.ErrMongoDBCreateIndex(err)
	}

	return &PaymentMongoRepository{Collection: collection}, nil
}

func (r *PaymentMongoRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	doc := paymentToDocument(payment)
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	payment.ID = doc.ID
	return payment, nil
}

func (r *PaymentMongoRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	if _, err := primitive.ObjectIDFromHex(paymentID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	return r.findOne(ctx, bson.M{"_id": paymentID})
}

func (r *PaymentMongoRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"idempotencyKey": key})
}

func (r *PaymentMongoRepository) FindByGatewayRef(ctx context.Context, gatewayRef string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"gatewayRef": gatewayRef})
}

func (r *PaymentMongoRepository) FindByConsultationID(ctx context.Context, consultationID string) ([]models.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"consultationId": consultationID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	for cursor.Next(ctx) {
		var doc paymentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, exceptions.ErrMongoDBFindDocument(err)
		}
		payment, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return payments, nil
}

func (r *PaymentMongoRepository) Update(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	doc := paymentToDocument(payment)
	filter := bson.M{"_id": doc.ID}
	doc.ID = ""
	update := bson.M{"$set": doc}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return payment, nil
}

func (r *PaymentMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Payment, error) {
	var doc paymentDocument
	err := r.Collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel()
}
