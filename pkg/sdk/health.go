package catalog

import (
	"context"

	healthuc "github.com/kailas-cloud/catalog/internal/usecase/health"
)

// Component names reported in HealthStatus.Checks.
const (
	CheckCatalog  = "catalog"
	CheckDatabase = "database"
)

// HealthStatus is the aggregated state of the client.
//
// Status is "ok", "degraded" or "error". Checks maps a component to
// "ok", "loading" or "error"; CheckDatabase appears only for Redis/Valkey sources.
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// Ready reports whether the catalog can serve searches.
func (h HealthStatus) Ready() bool {
	return h.Checks[CheckCatalog] == string(healthuc.CheckOK)
}

// Health reports the catalog load state and store connectivity.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for component, result := range report.Checks {
		h.Checks[component] = string(result)
	}
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
