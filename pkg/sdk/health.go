package knwl

import "context"

// HealthStatus reports whether the store is usable.
type HealthStatus struct {
	Status string
	Time   string
	Checks map[string]string
}

// Healthy reports whether every check passed.
func (h HealthStatus) Healthy() bool { return h.Status == "ok" }

// Health pings the database.
func (c *Client) Health(ctx context.Context) HealthStatus {
	r := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{Status: string(r.Status), Time: r.Time, Checks: checks}
}
