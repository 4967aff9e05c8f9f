package resource

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Age  string `json:"age"`
}

func TestEndpoint_GetEach(t *testing.T) {
	srv := newPeopleServer(t)
	client := newTestClient(t, srv.URL, func(c *ClientConfig) {
		c.BatchConcurrency = 2
	})
	people := client.Endpoint("people")

	results, err := people.GetEach(context.Background(), []any{4, 1, 3, 2})
	require.NoError(t, err)
	require.Len(t, results, 4)

	var names []string
	for _, r := range results {
		names = append(names, r.Data.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{"d", "a", "c", "b"}, names)
	assert.Len(t, srv.Requests(), 4)

	t.Run("first failure is returned", func(t *testing.T) {
		results, err := people.GetEach(context.Background(), []any{1, 42})
		require.Error(t, err)
		assert.Nil(t, results)
		assert.ErrorIs(t, err, &HTTPError{})
	})
}

func TestTyped(t *testing.T) {
	srv := newPeopleServer(t)
	people := Of[person](newTestClient(t, srv.URL).Endpoint("people"))
	ctx := context.Background()

	p, err := people.GetOne(ctx, 2, WithRaw())
	require.NoError(t, err)
	assert.Equal(t, person{ID: 2, Name: "b", Age: "4"}, *p)

	list, err := people.GetMany(ctx, RawQuery("age=3"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "c", list[1].Name)

	created, err := people.Create(ctx, person{Name: "f", Age: "9"})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)

	updated, err := people.Update(ctx, created.ID, person{Name: "g", Age: "9"})
	require.NoError(t, err)
	assert.Equal(t, "g", updated.Name)

	status, err := people.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)

	assert.Same(t, people.Endpoint(), people.Endpoint())
}

func TestAsync(t *testing.T) {
	srv := newPeopleServer(t)
	people := newTestClient(t, srv.URL).Endpoint("people")

	f := Async(func() (*Result, error) {
		return people.GetOne(context.Background(), 1)
	})

	result, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	select {
	case <-f.Done():
	default:
		t.Fatal("future not done after Await returned")
	}

	t.Run("await gives up with its context", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		slow := Async(func() (int, error) {
			<-release
			return 1, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		v, err := slow.Await(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Zero(t, v)
	})
}

func TestMetrics(t *testing.T) {
	srv := newPeopleServer(t)

	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	people := newTestClient(t, srv.URL, func(c *ClientConfig) {
		c.Metrics = metrics
	}).Endpoint("people")

	ctx := context.Background()
	_, err = people.GetOne(ctx, 1)
	require.NoError(t, err)
	_, err = people.GetOne(ctx, 2)
	require.NoError(t, err)
	_, err = people.GetOne(ctx, 404)
	require.Error(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("200", "get")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("404", "get")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.InFlight))

	t.Run("duplicate registration fails", func(t *testing.T) {
		_, err := NewMetrics(reg)
		require.Error(t, err)
	})
}
