package payment_gateway

import (
	"context"
	"errors"
	"strings"
	"sync"

	"zahara-service/internal/app/config"
	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/exceptions"
	"zahara-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	refPrefixMobileMoney  = "MM"
	refPrefixBankTransfer = "BT"
	refPrefixCard         = "CD"

	msgMobileMoneyApproved   = "Mobile money charge approved."
	msgBankTransferInitiated = "Bank transfer initiated. Settlement expected within 2-3 business days."
	msgCardApproved          = "Card charge approved."

	errMsgMTNInvalidNumber    = "Invalid MTN mobile money number"
	errMsgAirtelInvalidNumber = "Invalid Airtel money number"
	errMsgBankAccountMissing  = "Bank account number is required"
	errMsgInvalidCard         = "Invalid card information"
	errMsgUnsupportedMethod   = "Unsupported payment method"
	errMsgGatewayTimeout      = "Payment gateway timed out"
)

type gatewayService struct {
	InternalConfig *config.InternalConfig
	Logger         *zap.Logger
}

var (
	gatewayServiceInstance contracts.PaymentGatewayService
	onceGatewayService     sync.Once
)

func NewGatewayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceGatewayService.Do(func() {
		gatewayServiceInstance = &gatewayService{
			InternalConfig: internalConfig,
			Logger:         logger,
		}
	})
	return gatewayServiceInstance
}

// ProcessPayment charges through the method-specific rail. Declines are
// reported in the result with Success false; the error return is reserved
// for programming mistakes such as a nil input.
func (s *gatewayService) ProcessPayment(ctx context.Context, input *contracts.GatewayPaymentInput) (*contracts.GatewayPaymentResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if input == nil {
		return nil, exceptions.ErrGatewayNilInput(errors.New(constvars.ErrDevGatewayNilInput))
	}

	if err := ctx.Err(); err != nil {
		s.Logger.Warn("gateway call abandoned, context done",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("reference", input.Reference),
			zap.Error(err),
		)
		return s.decline(input, errMsgGatewayTimeout), nil
	}

	s.Logger.Info("dispatching gateway charge",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("method", string(input.Method)),
		zap.String("amount", input.Amount.String()),
		zap.String("currency", input.Currency),
	)

	switch input.Method {
	case models.PaymentMethodMTNMobileMoney:
		return s.chargeMobileMoney(input, errMsgMTNInvalidNumber), nil
	case models.PaymentMethodAirtelMoney:
		return s.chargeMobileMoney(input, errMsgAirtelInvalidNumber), nil
	case models.PaymentMethodBankTransfer:
		return s.chargeBankTransfer(input), nil
	case models.PaymentMethodCard:
		return s.chargeCard(input), nil
	default:
		return s.decline(input, errMsgUnsupportedMethod), nil
	}
}

func (s *gatewayService) chargeMobileMoney(input *contracts.GatewayPaymentInput, invalidNumberMsg string) *contracts.GatewayPaymentResult {
	phone := strings.TrimSpace(input.PhoneNumber)
	if phone == "" || !strings.HasPrefix(phone, s.InternalConfig.Payment.PhoneCountryPrefix) {
		return s.decline(input, invalidNumberMsg)
	}
	return &contracts.GatewayPaymentResult{
		Success:       true,
		TransactionID: utils.GenerateTransactionRef(refPrefixMobileMoney),
		Message:       msgMobileMoneyApproved,
	}
}

func (s *gatewayService) chargeBankTransfer(input *contracts.GatewayPaymentInput) *contracts.GatewayPaymentResult {
	if strings.TrimSpace(input.BankAccount) == "" {
		return s.decline(input, errMsgBankAccountMissing)
	}
	return &contracts.GatewayPaymentResult{
		Success:       true,
		TransactionID: utils.GenerateTransactionRef(refPrefixBankTransfer),
		Message:       msgBankTransferInitiated,
	}
}

func (s *gatewayService) chargeCard(input *contracts.GatewayPaymentInput) *contracts.GatewayPaymentResult {
	if len(strings.TrimSpace(input.CardToken)) < s.InternalConfig.Payment.MinCardTokenLength {
		return s.decline(input, errMsgInvalidCard)
	}
	return &contracts.GatewayPaymentResult{
		Success:       true,
		TransactionID: utils.GenerateTransactionRef(refPrefixCard),
		Message:       msgCardApproved,
	}
}

func (s *gatewayService) decline(input *contracts.GatewayPaymentInput, reason string) *contracts.GatewayPaymentResult {
	s.Logger.Info("gateway charge declined",
		zap.String("method", string(input.Method)),
		zap.String("reason", reason),
	)
	return &contracts.GatewayPaymentResult{
		Success:      false,
		ErrorMessage: reason,
	}
}
