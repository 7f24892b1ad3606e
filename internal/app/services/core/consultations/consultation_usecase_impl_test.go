package consultations

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"zahara-service/internal/app/config"
	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/dto/responses"
	"zahara-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUserRepository struct {
	users map[string]*models.User
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

type fakeProviderRepository struct {
	providers map[string]*models.Provider
}

func (f *fakeProviderRepository) FindByID(ctx context.Context, providerID string) (*models.Provider, error) {
	return f.providers[providerID], nil
}

type fakeConsultationRepository struct {
	consultations map[string]*models.Consultation
	nextID        int
	createCalls   int
}

func (f *fakeConsultationRepository) Create(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	f.nextID++
	f.createCalls++
	consultation.ID = fmt.Sprintf("consultation-%d", f.nextID)
	copied := *consultation
	f.consultations[consultation.ID] = &copied
	return consultation, nil
}

func (f *fakeConsultationRepository) FindByID(ctx context.Context, consultationID string) (*models.Consultation, error) {
	stored, ok := f.consultations[consultationID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeConsultationRepository) Update(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	copied := *consultation
	f.consultations[consultation.ID] = &copied
	return consultation, nil
}

type fakePaymentRepository struct {
	payments    map[string]*models.Payment
	nextID      int
	createCalls int
}

func (f *fakePaymentRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	f.nextID++
	f.createCalls++
	payment.ID = fmt.Sprintf("payment-%d", f.nextID)
	copied := *payment
	f.payments[payment.ID] = &copied
	return payment, nil
}

func (f *fakePaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	return f.payments[paymentID], nil
}

func (f *fakePaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.IdempotencyKey == key {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepository) FindByGatewayRef(ctx context.Context, gatewayRef string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.GatewayRef == gatewayRef {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepository) FindByConsultationID(ctx context.Context, consultationID string) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, p := range f.payments {
		if p.ConsultationID == consultationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepository) Update(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	copied := *payment
	f.payments[payment.ID] = &copied
	return payment, nil
}

type fakeGatewayService struct {
	result    *contracts.GatewayPaymentResult
	calls     int
	lastInput *contracts.GatewayPaymentInput
}

func (f *fakeGatewayService) ProcessPayment(ctx context.Context, input *contracts.GatewayPaymentInput) (*contracts.GatewayPaymentResult, error) {
	f.calls++
	f.lastInput = input
	return f.result, nil
}

type fakeLockerService struct {
	denyLock bool
	locked   map[string]bool
}

func (f *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.denyLock {
		return false, "", nil
	}
	if f.locked == nil {
		f.locked = make(map[string]bool)
	}
	f.locked[key] = true
	return true, "lock-value", nil
}

func (f *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	delete(f.locked, key)
	return nil
}

// gatedConsultationRepository holds the first two FindByID calls at a
// barrier so two concurrent payment submits both read the consultation
// before either of them takes the payment lock.
type gatedConsultationRepository struct {
	*fakeConsultationRepository
	mu       sync.Mutex
	gated    int32
	arrivals chan struct{}
	release  chan struct{}
}

func (g *gatedConsultationRepository) FindByID(ctx context.Context, consultationID string) (*models.Consultation, error) {
	if atomic.AddInt32(&g.gated, 1) <= 2 {
		g.arrivals <- struct{}{}
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fakeConsultationRepository.FindByID(ctx, consultationID)
}

func (g *gatedConsultationRepository) Create(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fakeConsultationRepository.Create(ctx, consultation)
}

func (g *gatedConsultationRepository) Update(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fakeConsultationRepository.Update(ctx, consultation)
}

// queueingLockerService grants the lock to one caller at a time and
// makes the next caller wait for the release instead of failing fast.
type queueingLockerService struct {
	tokens chan struct{}
}

func newQueueingLockerService() *queueingLockerService {
	l := &queueingLockerService{tokens: make(chan struct{}, 1)}
	l.tokens <- struct{}{}
	return l
}

func (l *queueingLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	<-l.tokens
	return true, "lock-value", nil
}

func (l *queueingLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	l.tokens <- struct{}{}
	return nil
}

type fakeEventQueueService struct {
	events []*contracts.LifecycleEvent
}

func (f *fakeEventQueueService) Publish(ctx context.Context, event *contracts.LifecycleEvent) error {
	f.events = append(f.events, event)
	return nil
}

type usecaseFixture struct {
	usecase          contracts.ConsultationUsecase
	userRepo         *fakeUserRepository
	providerRepo     *fakeProviderRepository
	consultationRepo *fakeConsultationRepository
	paymentRepo      *fakePaymentRepository
	gateway          *fakeGatewayService
	locker           *fakeLockerService
	queue            *fakeEventQueueService
}

func newUsecaseFixture(t *testing.T) *usecaseFixture {
	t.Helper()

	fixture := &usecaseFixture{
		userRepo: &fakeUserRepository{users: map[string]*models.User{
			"amina@example.com": {ID: "user-1", Email: "amina@example.com", FullName: "Amina K"},
		}},
		providerRepo: &fakeProviderRepository{providers: map[string]*models.Provider{
			"provider-1": {
				ID:              "provider-1",
				FullName:        "Dr. Nakato",
				ConsultationFee: decimal.RequireFromString("50000"),
				Verified:        true,
			},
		}},
		consultationRepo: &fakeConsultationRepository{consultations: map[string]*models.Consultation{}},
		paymentRepo:      &fakePaymentRepository{payments: map[string]*models.Payment{}},
		gateway: &fakeGatewayService{result: &contracts.GatewayPaymentResult{
			Success:       true,
			TransactionID: "MM-txn-1",
			Message:       "Mobile money charge approved.",
		}},
		locker: &fakeLockerService{},
		queue:  &fakeEventQueueService{},
	}

	internalConfig := &config.InternalConfig{
		Payment: config.Payment{
			Currency:           "UGX",
			PlatformFeeRate:    "0.10",
			PhoneCountryPrefix: "+256",
			MinCardTokenLength: 10,
			GatewayTimeoutSecs: 5,
			LockTTLSecs:        30,
		},
	}

	usecase, err := NewConsultationUsecase(
		fixture.consultationRepo,
		fixture.userRepo,
		fixture.providerRepo,
		fixture.paymentRepo,
		fixture.gateway,
		fixture.locker,
		fixture.queue,
		internalConfig,
		zap.NewNop(),
	)
	assert.NoError(t, err)

	fixture.usecase = usecase
	return fixture
}

func bookRequest() *requests.BookConsultationRequest {
	return &requests.BookConsultationRequest{
		ProviderID:  "provider-1",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Type:        string(models.ConsultationTypeVideo),
	}
}

func TestBookConsultation(t *testing.T) {
	t.Run("books with exact fee split", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		response, err := fixture.usecase.BookConsultation(context.Background(), "amina@example.com", bookRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, response.ConsultationID)
		assert.Equal(t, string(models.ConsultationStatusPendingPayment), response.Status)
		assert.Equal(t, string(models.PaymentStatusPending), response.PaymentStatus)
		assert.Equal(t, "50000", response.ConsultationFee.String())
		assert.Equal(t, "5000", response.AppFee.String())
		assert.Equal(t, "55000", response.TotalAmount.String())
		assert.Len(t, fixture.queue.events, 1)
		assert.Equal(t, "consultation.booked", fixture.queue.events[0].Kind)
	})

	t.Run("past scheduled time is rejected", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		request := bookRequest()
		request.ScheduledAt = time.Now().Add(-time.Hour)

		_, err := fixture.usecase.BookConsultation(context.Background(), "amina@example.com", request)

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 400, customErr.StatusCode)
		assert.Equal(t, "scheduled time must be in the future", customErr.ClientMessage)
		assert.Zero(t, fixture.consultationRepo.createCalls)
	})

	t.Run("unknown requester creates nothing", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		_, err := fixture.usecase.BookConsultation(context.Background(), "ghost@example.com", bookRequest())

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
		assert.Zero(t, fixture.consultationRepo.createCalls)
	})

	t.Run("unknown provider creates nothing", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		request := bookRequest()
		request.ProviderID = "provider-unknown"

		_, err := fixture.usecase.BookConsultation(context.Background(), "amina@example.com", request)

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
		assert.Zero(t, fixture.consultationRepo.createCalls)
	})
}

func bookForPayment(t *testing.T, fixture *usecaseFixture) string {
	t.Helper()
	response, err := fixture.usecase.BookConsultation(context.Background(), "amina@example.com", bookRequest())
	assert.NoError(t, err)
	return response.ConsultationID
}

func TestProcessPayment(t *testing.T) {
	t.Run("successful charge schedules the consultation", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		response, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:   "+256772123456",
		})

		assert.NoError(t, err)
		assert.True(t, response.Success)
		assert.Equal(t, "Payment successful. Consultation confirmed.", response.Message)
		assert.Equal(t, "MM-txn-1", response.TransactionID)
		assert.Equal(t, string(models.PaymentStatusCompleted), response.PaymentStatus)

		stored, _ := fixture.consultationRepo.FindByID(context.Background(), consultationID)
		assert.Equal(t, models.ConsultationStatusScheduled, stored.Status)
		assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
		assert.Equal(t, "MM-txn-1", stored.PaymentTransactionID)
		assert.NotNil(t, stored.PaidAt)
	})

	t.Run("declined charge keeps the consultation pending", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.gateway.result = &contracts.GatewayPaymentResult{
			Success:      false,
			ErrorMessage: "Invalid MTN mobile money number",
		}
		consultationID := bookForPayment(t, fixture)

		response, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:   "0772123456",
		})

		assert.NoError(t, err)
		assert.False(t, response.Success)
		assert.Equal(t, "Payment failed: Invalid MTN mobile money number", response.Message)
		assert.Empty(t, response.TransactionID)

		stored, _ := fixture.consultationRepo.FindByID(context.Background(), consultationID)
		assert.Equal(t, models.ConsultationStatusPendingPayment, stored.Status)
		assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)
		assert.Nil(t, stored.PaidAt)
	})

	t.Run("unknown consultation is not found", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		_, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", "consultation-404", &requests.ProcessPaymentRequest{})

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("ownership is checked before method validity", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		// An obviously bogus method still yields the ownership error.
		_, err := fixture.usecase.ProcessPayment(context.Background(), "intruder@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: "BOGUS",
		})

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 403, customErr.StatusCode)
		assert.Zero(t, fixture.gateway.calls)
		assert.Zero(t, fixture.paymentRepo.createCalls)
	})

	t.Run("held lock yields a retryable conflict", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)
		fixture.locker.denyLock = true

		_, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:   "+256772123456",
		})

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Zero(t, fixture.gateway.calls)
	})

	t.Run("duplicate idempotency key replays the stored outcome", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)
		request := &requests.ProcessPaymentRequest{
			PaymentMethod:  string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:    "+256772123456",
			IdempotencyKey: "idem-abc",
		}

		first, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, request)
		assert.NoError(t, err)

		second, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, request)
		assert.NoError(t, err)

		assert.Equal(t, first.TransactionID, second.TransactionID)
		assert.Equal(t, 1, fixture.gateway.calls)
		assert.Equal(t, 1, fixture.paymentRepo.createCalls)
	})

	t.Run("already paid consultation answers idempotently", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		_, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:   "+256772123456",
		})
		assert.NoError(t, err)

		// Second submit without a key: no new charge, same outcome.
		response, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:   "+256772123456",
		})

		assert.NoError(t, err)
		assert.True(t, response.Success)
		assert.Equal(t, "MM-txn-1", response.TransactionID)
		assert.Equal(t, 1, fixture.gateway.calls)
	})

	t.Run("concurrent submits charge the gateway once", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		// Both submits read the consultation while it is still unpaid,
		// then go through the lock one after the other. Only the first
		// may charge; the second must settle on its re-read.
		gated := &gatedConsultationRepository{
			fakeConsultationRepository: fixture.consultationRepo,
			arrivals:                   make(chan struct{}, 2),
			release:                    make(chan struct{}),
		}
		usecase, err := NewConsultationUsecase(
			gated,
			fixture.userRepo,
			fixture.providerRepo,
			fixture.paymentRepo,
			fixture.gateway,
			newQueueingLockerService(),
			fixture.queue,
			&config.InternalConfig{Payment: config.Payment{
				Currency:           "UGX",
				PlatformFeeRate:    "0.10",
				PhoneCountryPrefix: "+256",
				MinCardTokenLength: 10,
				GatewayTimeoutSecs: 5,
				LockTTLSecs:        30,
			}},
			zap.NewNop(),
		)
		assert.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]*responses.PaymentResponse, 2)
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
					PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
					PhoneNumber:   "+256772123456",
				})
			}(i)
		}
		<-gated.arrivals
		<-gated.arrivals
		close(gated.release)
		wg.Wait()

		for i := 0; i < 2; i++ {
			assert.NoError(t, errs[i])
			assert.True(t, results[i].Success)
			assert.Equal(t, "MM-txn-1", results[i].TransactionID)
		}
		assert.Equal(t, 1, fixture.gateway.calls)
		assert.Equal(t, 1, fixture.paymentRepo.createCalls)
	})

	t.Run("stored reference matches what the gateway was sent", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		_, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:   "+256772123456",
		})
		assert.NoError(t, err)

		// A webhook quoting the reference from the gateway call must be
		// able to find the record it belongs to.
		assert.NotNil(t, fixture.gateway.lastInput)
		assert.True(t, strings.HasPrefix(fixture.gateway.lastInput.Reference, "PAY-"))
		record, err := fixture.paymentRepo.FindByGatewayRef(context.Background(), fixture.gateway.lastInput.Reference)
		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, consultationID, record.ConsultationID)
		assert.Equal(t, "MM-txn-1", record.TransactionID)
	})

	t.Run("payment record carries the exact fee split", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		_, err := fixture.usecase.ProcessPayment(context.Background(), "amina@example.com", consultationID, &requests.ProcessPaymentRequest{
			PaymentMethod: string(models.PaymentMethodMTNMobileMoney),
			PhoneNumber:   "+256772123456",
		})
		assert.NoError(t, err)

		records, err := fixture.paymentRepo.FindByConsultationID(context.Background(), consultationID)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		record := records[0]
		assert.Equal(t, models.PaymentRecordStatusSucceeded, record.Status)
		assert.Equal(t, "UGX", record.Currency)
		assert.True(t, record.ProviderShare.Add(record.PlatformFee).Equal(record.Amount))
	})
}

func TestGetPaymentMethods(t *testing.T) {
	t.Run("lists every supported method including cash", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		methods, err := fixture.usecase.GetPaymentMethods(context.Background(), consultationID)

		assert.NoError(t, err)
		assert.Equal(t, models.SupportedPaymentMethods, methods)
		assert.Contains(t, methods, models.PaymentMethodCash)
	})

	t.Run("unknown consultation is not found", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		_, err := fixture.usecase.GetPaymentMethods(context.Background(), "consultation-404")

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestGetConsultation(t *testing.T) {
	t.Run("owner reads their consultation", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		response, err := fixture.usecase.GetConsultation(context.Background(), "amina@example.com", consultationID)

		assert.NoError(t, err)
		assert.Equal(t, consultationID, response.ID)
		assert.Equal(t, "55000", response.TotalAmount.String())
	})

	t.Run("stranger is refused", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		consultationID := bookForPayment(t, fixture)

		_, err := fixture.usecase.GetConsultation(context.Background(), "intruder@example.com", consultationID)

		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 403, customErr.StatusCode)
	})
}
