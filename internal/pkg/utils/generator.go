package utils

import (
	"fmt"

	"zahara-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateTransactionRef builds the gateway reference for a payment
// attempt, prefixed per method family so webhook handlers can route it.
func GenerateTransactionRef(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
