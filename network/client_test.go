package network_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/super-spinner/mockapi"
	"github.com/lixenwraith/super-spinner/network"
)

func newMock(t *testing.T, cfg mockapi.Config) (*mockapi.Server, *network.Client) {
	t.Helper()
	srv, err := mockapi.New(cfg, nil)
	if err != nil {
		t.Fatalf("mockapi.New: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, network.NewClient(network.LocalConfig(ts.URL+"/"), ts.Client(), nil)
}

func TestFetchValueSet(t *testing.T) {
	_, c := newMock(t, mockapi.Config{Values: []int{1000, 2000, 3000}})

	values, err := c.FetchValueSet(context.Background())
	if err != nil {
		t.Fatalf("FetchValueSet: %v", err)
	}
	if len(values) != 3 || values[0] != 1000 || values[2] != 3000 {
		t.Errorf("values = %v", values)
	}
}

func TestSpin(t *testing.T) {
	_, c := newMock(t, mockapi.Config{Values: []int{1000, 150000}, Script: []int{150000}})

	v, err := c.Spin(context.Background())
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if v != 150000 {
		t.Errorf("Spin = %d, want 150000", v)
	}
}

func TestRetryRecoversSingleFailure(t *testing.T) {
	srv, c := newMock(t, mockapi.Config{Values: []int{1}, FailFirst: 1})

	if _, err := c.FetchValueSet(context.Background()); err != nil {
		t.Fatalf("FetchValueSet with one retry: %v", err)
	}
	if values, _, faults := srv.Stats(); values != 1 || faults != 1 {
		t.Errorf("values=%d faults=%d, want 1/1", values, faults)
	}
}

func TestRetriesExhausted(t *testing.T) {
	_, c := newMock(t, mockapi.Config{Values: []int{1}, FailFirst: 2})

	_, err := c.FetchValueSet(context.Background())
	if !errors.Is(err, network.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
	var re *network.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("err %T is not *RequestError", err)
	}
	if re.Attempts != 2 || re.Status != http.StatusServiceUnavailable || re.Op != "values" {
		t.Errorf("RequestError = %+v", re)
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", `{"spinnerValue":`},
		{"missing field", `{"other":1}`},
		{"null field", `{"spinnerValue":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := network.NewClient(network.LocalConfig(ts.URL), ts.Client(), nil)
			_, err := c.Spin(context.Background())
			if !errors.Is(err, network.ErrParseFailed) {
				t.Errorf("err = %v, want ErrParseFailed", err)
			}
			if hits.Load() != 2 {
				t.Errorf("hits = %d, want 2 attempts", hits.Load())
			}
		})
	}
}

func TestZeroPrizeIsValid(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"spinnerValue":0}`))
	}))
	defer ts.Close()

	c := network.NewClient(network.LocalConfig(ts.URL), ts.Client(), nil)
	v, err := c.Spin(context.Background())
	if err != nil || v != 0 {
		t.Errorf("Spin = %d, %v; want 0, nil", v, err)
	}
}

func TestRequestShape(t *testing.T) {
	var gotMethod, gotAccept, gotType, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAccept = r.Header.Get("Accept")
		gotType = r.Header.Get("Content-Type")
		buf := make([]byte, 16)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.Write([]byte(`{"spinnerValue":5}`))
	}))
	defer ts.Close()

	c := network.NewClient(network.LocalConfig(ts.URL), ts.Client(), nil)
	if _, err := c.Spin(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPost || gotAccept != "application/json" || gotType != "application/json" || gotBody != "{}" {
		t.Errorf("request = %s accept=%q type=%q body=%q", gotMethod, gotAccept, gotType, gotBody)
	}
}

func TestPerAttemptTimeout(t *testing.T) {
	srv, err := mockapi.New(mockapi.Config{Values: []int{1}, Latency: 200 * time.Millisecond}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	cfg := network.LocalConfig(ts.URL)
	cfg.ValuesTimeout = 20 * time.Millisecond
	c := network.NewClient(cfg, ts.Client(), nil)

	start := time.Now()
	_, err = c.FetchValueSet(context.Background())
	if !errors.Is(err, network.ErrFetchFailed) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want timeout fetch failure", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timed out after %v", elapsed)
	}
}

func TestCancelledContextStopsRetries(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cfg := network.LocalConfig(ts.URL)
	cfg.Retries = 5
	c := network.NewClient(cfg, ts.Client(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Spin(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if hits.Load() != 0 {
		t.Errorf("hits = %d, want 0 for cancelled context", hits.Load())
	}
}
