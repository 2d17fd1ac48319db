package metrics

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/idprovider/provider"
	"github.com/viant/idprovider/service/registry"
)

func TestCollector(t *testing.T) {
	ctx := context.Background()
	draws := []int64{10, 10, 11}
	r := registry.New(func(_ context.Context, name string) (*provider.Provider, error) {
		if name != "jobs" {
			return provider.New(nil), nil
		}
		return provider.New([]int64{1, 2, 3}, provider.WithSource(func() int64 {
			next := draws[0]
			draws = draws[1:]
			return next
		})), nil
	})
	jobs, err := r.Get(ctx, "jobs")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		jobs.Pop()
	}
	_, err = r.Get(ctx, "empty")
	require.NoError(t, err)

	collector := NewPrometheusCollector(r, nil)
	assert.Equal(t, 9, testutil.CollectAndCount(collector))

	expected := `
# HELP idprovider_collisions_total Random draws rejected as already issued
# TYPE idprovider_collisions_total counter
idprovider_collisions_total{scope="empty"} 0
idprovider_collisions_total{scope="jobs"} 1
# HELP idprovider_ids_issued_total Identifiers issued by origin
# TYPE idprovider_ids_issued_total counter
idprovider_ids_issued_total{origin="generated",scope="empty"} 0
idprovider_ids_issued_total{origin="generated",scope="jobs"} 2
idprovider_ids_issued_total{origin="reserved",scope="empty"} 0
idprovider_ids_issued_total{origin="reserved",scope="jobs"} 3
# HELP idprovider_reserved_remaining Reserved identifiers not yet issued
# TYPE idprovider_reserved_remaining gauge
idprovider_reserved_remaining{scope="empty"} 0
idprovider_reserved_remaining{scope="jobs"} 0
# HELP idprovider_scopes Number of provider scopes
# TYPE idprovider_scopes gauge
idprovider_scopes 2
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}
