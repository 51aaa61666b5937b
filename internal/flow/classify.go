package flow

import (
	"net/http"
	"strings"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// RateLimitPredicate decides whether a provider failure represents quota or
// throughput exhaustion. The predicate sees only the failure's status code
// and message, which keeps classification provider-agnostic; adapters with
// better signals can supply their own via WithRateLimitPredicate.
type RateLimitPredicate func(statusCode int, message string) bool

// rateLimitMarkers are the message substrings the default predicate treats
// as quota exhaustion when the status code is inconclusive.
var rateLimitMarkers = []string{"429", "quota", "rate limit", "rate_limit"}

// DefaultRateLimitPredicate matches an HTTP 429 status or a quota marker in
// the failure message.
func DefaultRateLimitPredicate(statusCode int, message string) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(message)
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Classify maps a provider failure into the closed error taxonomy:
// rate_limited when the predicate matches, provider_unavailable otherwise,
// with the original message preserved either way.
func Classify(failure *models.ProviderFailure, isRateLimited RateLimitPredicate) *models.ClassifiedError {
	if isRateLimited == nil {
		isRateLimited = DefaultRateLimitPredicate
	}
	if isRateLimited(failure.StatusCode, failure.Message) {
		return models.NewClassifiedError(models.ErrorKindRateLimited, failure.Message, failure)
	}
	return models.NewClassifiedError(models.ErrorKindProviderUnavailable, failure.Message, failure)
}
