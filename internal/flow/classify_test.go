package flow

import (
	"testing"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

func TestClassify_QuotaStatus(t *testing.T) {
	failure := &models.ProviderFailure{StatusCode: 429, Message: "Too Many Requests"}
	ce := Classify(failure, nil)
	if ce.Kind != models.ErrorKindRateLimited {
		t.Errorf("expected rate_limited for 429 status, got %v", ce.Kind)
	}
}

func TestClassify_QuotaMessageMarkers(t *testing.T) {
	cases := []string{
		"429 quota exceeded",
		"You exceeded your current quota",
		"Rate limit reached for requests",
	}
	for _, msg := range cases {
		failure := &models.ProviderFailure{StatusCode: 500, Message: msg}
		if ce := Classify(failure, nil); ce.Kind != models.ErrorKindRateLimited {
			t.Errorf("message %q: expected rate_limited, got %v", msg, ce.Kind)
		}
	}
}

func TestClassify_OtherFailuresPassThrough(t *testing.T) {
	cases := []*models.ProviderFailure{
		{StatusCode: 500, Message: "internal server error"},
		{StatusCode: 401, Message: "invalid api key"},
		{Message: "connection refused"},
	}
	for _, failure := range cases {
		ce := Classify(failure, nil)
		if ce.Kind != models.ErrorKindProviderUnavailable {
			t.Errorf("failure %v: expected provider_unavailable, got %v", failure, ce.Kind)
		}
		if ce.Message != failure.Message {
			t.Errorf("expected original message preserved, got %q", ce.Message)
		}
	}
}

func TestClassify_CustomPredicate(t *testing.T) {
	// A provider with a better signal can override the string matching.
	predicate := func(status int, message string) bool { return status == 599 }
	failure := &models.ProviderFailure{StatusCode: 599, Message: "vendor throttle"}
	if ce := Classify(failure, predicate); ce.Kind != models.ErrorKindRateLimited {
		t.Errorf("expected custom predicate to classify as rate_limited, got %v", ce.Kind)
	}
	quota := &models.ProviderFailure{StatusCode: 429, Message: "quota"}
	if ce := Classify(quota, predicate); ce.Kind != models.ErrorKindProviderUnavailable {
		t.Errorf("custom predicate should fully replace the default, got %v", ce.Kind)
	}
}
