package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the cache is unreachable; requests are still served.
	Degraded Status = "degraded"
	// Unhealthy indicates the stopword list is missing and ranking cannot run.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckStopwords = "stopwords"
	CheckCache     = "cache"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	stopwords StopwordsChecker
	lang      string
	cache     CachePinger
}

// New creates a Service for the configured stopword language. cache can be nil.
func New(stopwords StopwordsChecker, lang string, cache CachePinger) *Service {
	return &Service{stopwords: stopwords, lang: lang, cache: cache}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	status := Healthy

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks[CheckCache] = CheckError
			status = Degraded
		} else {
			checks[CheckCache] = CheckOK
		}
	}

	if s.stopwords.Loaded(s.lang) {
		checks[CheckStopwords] = CheckOK
	} else {
		checks[CheckStopwords] = CheckError
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
