package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteServer(t *testing.T, h http.HandlerFunc) *RemoteSource {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRemoteSource(srv.URL+"/wanphra", 200*time.Millisecond, "thainews-test")
}

func failing(name string) Source {
	return SourceFunc{SourceName: name, Fn: func(context.Context, int, int) ([]Observance, error) {
		return nil, errors.New("boom")
	}}
}

func TestResolveRemoteIsAuthoritative(t *testing.T) {
	var (
		mu                sync.Mutex
		gotYear, gotMonth string
	)
	remote := remoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotYear, gotMonth = r.URL.Query().Get("year"), r.URL.Query().Get("month")
		mu.Unlock()
		_, _ = w.Write([]byte(`[{"date":"2024-04-02","label":"A"},{"date":"2024-04-09","summary":"B"}]`))
	})
	var lunarCalls atomic.Int32
	lunar := SourceFunc{SourceName: "lunar", Fn: func(context.Context, int, int) ([]Observance, error) {
		lunarCalls.Add(1)
		return []Observance{{Date: "2024-04-01", Label: "x"}}, nil
	}}

	r := NewResolver(remote, lunar, &FallbackSource{Table: DefaultFallbackTable()})
	res := r.Resolve(context.Background(), 2024, 4)

	assert.Equal(t, "remote", res.Source)
	assert.Equal(t, []Observance{
		{Date: "2024-04-02", Label: "A"},
		{Date: "2024-04-09", Label: "B"},
	}, res.Observances)
	mu.Lock()
	assert.Equal(t, "2024", gotYear)
	assert.Equal(t, "4", gotMonth)
	mu.Unlock()
	assert.Zero(t, lunarCalls.Load())
}

func TestResolveFallsThroughToStaticTable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"not found", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"oops":`)) }},
		{"bad date", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[{"date":"soon","label":"x"}]`)) }},
		{"empty list", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) }},
		{"hangs", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := remoteServer(t, tt.handler)
			r := NewResolver(remote,
				&LunarSource{Calculator: UnavailableCalculator{}},
				&FallbackSource{Table: DefaultFallbackTable()})

			start := time.Now()
			res := r.Resolve(context.Background(), 2024, 4)

			assert.Less(t, time.Since(start), time.Second)
			assert.Equal(t, "fallback", res.Source)
			assert.Equal(t, DefaultFallbackTable().Lookup(2024, 4), res.Observances)
		})
	}
}

func TestResolveUsesLunarWhenRemoteDown(t *testing.T) {
	r := NewResolver(failing("remote"),
		&LunarSource{Calculator: NewAstronomicalCalculator()},
		&FallbackSource{Table: FallbackTable{}})

	res := r.Resolve(context.Background(), 2024, 4)
	assert.Equal(t, "lunar", res.Source)
	assert.NotEmpty(t, res.Observances)
}

func TestResolveAllTiersEmpty(t *testing.T) {
	r := NewResolver(failing("remote"),
		&LunarSource{Calculator: UnavailableCalculator{}},
		&FallbackSource{Table: DefaultFallbackTable()})

	res := r.Resolve(context.Background(), 1899, 1)
	require.NotNil(t, res.Observances)
	assert.Empty(t, res.Observances)
	assert.Empty(t, res.Source)
	assert.Empty(t, r.WanPhra(context.Background(), 1899, 1))
}

func TestResolveRecoversPanickingTier(t *testing.T) {
	panicky := SourceFunc{SourceName: "panicky", Fn: func(context.Context, int, int) ([]Observance, error) {
		panic("nil map")
	}}
	r := NewResolver(panicky, &FallbackSource{Table: DefaultFallbackTable()})
	res := r.Resolve(context.Background(), 2024, 4)
	assert.Equal(t, "fallback", res.Source)
}

func TestResolveInvalidMonth(t *testing.T) {
	var calls atomic.Int32
	counting := SourceFunc{SourceName: "counting", Fn: func(context.Context, int, int) ([]Observance, error) {
		calls.Add(1)
		return []Observance{{Date: "2024-01-01", Label: "x"}}, nil
	}}
	r := NewResolver(counting)
	for _, m := range []int{0, 13, -1} {
		assert.Empty(t, r.WanPhra(context.Background(), 2024, m))
	}
	assert.Zero(t, calls.Load())
}

func TestLunarSourceFailsAsWhole(t *testing.T) {
	calls := 0
	calc := calcFunc(func(day time.Time) (LunarDate, error) {
		calls++
		if day.Day() == 20 {
			return LunarDate{}, errors.New("table gap")
		}
		return LunarDate{Phase: Waxing, Day: 8}, nil
	})
	obs, err := (&LunarSource{Calculator: calc}).Observances(context.Background(), 2024, 4)
	assert.Error(t, err)
	assert.Nil(t, obs)
	assert.Equal(t, 20, calls)

	_, err = (&LunarSource{}).Observances(context.Background(), 2024, 4)
	assert.ErrorIs(t, err, ErrCalculatorUnavailable)
}

func TestNewFromConfig(t *testing.T) {
	r, err := NewFromConfig(Config{LunarCalculator: false}, "ua")
	require.NoError(t, err)
	res := r.Resolve(context.Background(), 2024, 4)
	assert.Equal(t, "fallback", res.Source)

	_, err = NewFromConfig(Config{FallbackFile: "testdata/does-not-exist.yaml"}, "ua")
	assert.Error(t, err)
}

type calcFunc func(time.Time) (LunarDate, error)

func (f calcFunc) LunarDate(day time.Time) (LunarDate, error) { return f(day) }
