package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure; searches are still answered.
	Degraded Status = "degraded"
	// Unhealthy indicates that no catalog source can answer.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckDisabled indicates a component that is not configured.
	CheckDisabled CheckResult = "disabled"
)

// Component names reported in Report.Checks.
const (
	ComponentStore   = "catalog_store"
	ComponentCatalog = "local_catalog"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog CatalogChecker
}

// New creates a Service. db can be nil when no content store is configured.
func New(db DBPinger, catalog CatalogChecker) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	switch {
	case s.db == nil:
		checks[ComponentStore] = CheckDisabled
	case s.db.Ping(ctx) != nil:
		checks[ComponentStore] = CheckError
	default:
		checks[ComponentStore] = CheckOK
	}

	if s.catalog != nil && s.catalog.Loaded() {
		checks[ComponentCatalog] = CheckOK
	} else {
		checks[ComponentCatalog] = CheckError
	}

	return Report{Status: aggregate(checks), Checks: checks}
}

// aggregate is Healthy when nothing failed, Unhealthy when neither the store
// nor the local catalog can serve, Degraded otherwise.
func aggregate(checks map[string]CheckResult) Status {
	storeUp := checks[ComponentStore] == CheckOK
	catalogUp := checks[ComponentCatalog] == CheckOK

	switch {
	case !storeUp && !catalogUp:
		return Unhealthy
	case checks[ComponentStore] == CheckError || !catalogUp:
		return Degraded
	default:
		return Healthy
	}
}
