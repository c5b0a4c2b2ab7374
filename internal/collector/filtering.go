package collector

import (
	"context"
	"net/http"

	"github.com/kostyay/basementhq/internal/model"
)

// Filtering reads query counters from an AdGuard Home compatible API.
type Filtering struct {
	baseURL  string
	user     string
	password string
	client   *http.Client
}

// NewFiltering returns a filtering stats collector using basic auth.
func NewFiltering(baseURL, user, password string, client *http.Client) *Filtering {
	if client == nil {
		client = &http.Client{Timeout: model.SourceFiltering.Timeout()}
	}
	return &Filtering{baseURL: baseURL, user: user, password: password, client: client}
}

// ID implements Source.
func (f *Filtering) ID() model.SourceID { return model.SourceFiltering }

// Poll implements Source.
func (f *Filtering) Poll(ctx context.Context) model.Report {
	return f.Collect(ctx).Report(f.ID())
}

type filteringStats struct {
	DNSQueries      *int64 `json:"num_dns_queries"`
	BlockedFiltered *int64 `json:"num_blocked_filtering"`
}

// Collect queries /control/stats.
func (f *Filtering) Collect(ctx context.Context) model.Result[model.FilteringStats] {
	req, err := newGet(ctx, joinURL(f.baseURL, "/control/stats"))
	if err != nil {
		return model.Unavailable[model.FilteringStats](err.Error())
	}
	req.SetBasicAuth(f.user, f.password)

	var raw filteringStats
	res := fetchJSON(f.client, req, &raw)
	switch res.kind {
	case fetchTransport:
		return model.Unavailable[model.FilteringStats](transportReason(res.err))
	case fetchStatus:
		return model.Degraded(res.status, model.FilteringStats{})
	case fetchDecode:
		return model.Degraded("bad response", model.FilteringStats{})
	}
	if raw.DNSQueries == nil || raw.BlockedFiltered == nil {
		return model.Degraded("bad response", model.FilteringStats{})
	}

	return model.OK(NewFilteringStats(*raw.DNSQueries, *raw.BlockedFiltered))
}

// NewFilteringStats computes the block rate as a percentage. A total of
// zero gives a rate of zero.
func NewFilteringStats(total, blocked int64) model.FilteringStats {
	st := model.FilteringStats{TotalQueries: total, BlockedQueries: blocked}
	if total > 0 {
		st.BlockRate = float64(blocked) / float64(total) * 100
	}
	return st
}
