package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fishit/fishit/internal/database"
	"github.com/fishit/fishit/internal/kvcache"
)

func testCache(t *testing.T) *kvcache.Cache {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cache, err := kvcache.New(db)
	if err != nil {
		t.Fatalf("kvcache.New() error = %v", err)
	}
	return cache
}

// reverseServer serves a fixed Nominatim reverse payload and counts hits.
func reverseServer(t *testing.T, city string, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}
		if r.URL.Query().Get("addressdetails") != "1" {
			t.Errorf("addressdetails = %q, want 1", r.URL.Query().Get("addressdetails"))
		}

		var resp reverseResponse
		resp.Address.City = city
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		lat, lon float64
		expected string
	}{
		{44.84041, -0.58052, "44.8404,-0.5805"},
		{44.84039, -0.58048, "44.8404,-0.5805"}, // same 4-decimal bucket
		{0, 0, "0.0000,0.0000"},
	}

	for _, tt := range tests {
		if got := CacheKey(tt.lat, tt.lon); got != tt.expected {
			t.Errorf("CacheKey(%v, %v) = %q, want %q", tt.lat, tt.lon, got, tt.expected)
		}
	}
}

func TestService_Resolve_IdempotentPerBucket(t *testing.T) {
	var hits atomic.Int64
	server := reverseServer(t, "Blaye", &hits)
	defer server.Close()

	resolver := NewNominatimResolver()
	resolver.baseURL = server.URL

	svc := NewService(testCache(t), resolver)
	ctx := context.Background()

	// Outside every offline box; both calls land in the same bucket
	first := svc.Resolve(ctx, 45.12841, -0.66231)
	second := svc.Resolve(ctx, 45.12843, -0.66229)

	if first != "Blaye" || second != "Blaye" {
		t.Errorf("Resolve() = %q, %q, want Blaye both times", first, second)
	}
	if hits.Load() != 1 {
		t.Errorf("fallback network calls = %d, want 1 (second call must hit cache)", hits.Load())
	}
}

func TestService_Resolve_ConcurrentMissesShareOneCall(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(50 * time.Millisecond) // hold the first caller so the rest pile up

		var resp reverseResponse
		resp.Address.City = "Blaye"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	resolver := NewNominatimResolver()
	resolver.baseURL = server.URL

	svc := NewService(testCache(t), resolver)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Resolve(ctx, 45.12841, -0.66231)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != "Blaye" {
			t.Errorf("goroutine %d: Resolve() = %q, want Blaye", i, got)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("fallback network calls = %d, want 1 for concurrent same-bucket misses", hits.Load())
	}
}

func TestService_Resolve_OfflineFirst(t *testing.T) {
	var hits atomic.Int64
	server := reverseServer(t, "ShouldNotBeUsed", &hits)
	defer server.Close()

	resolver := NewNominatimResolver()
	resolver.baseURL = server.URL

	svc := NewService(testCache(t), NewOfflineResolver(), resolver)

	// Central Bordeaux: the offline resolver must answer before the network
	got := svc.Resolve(context.Background(), 44.8404, -0.5805)
	if got != "Bordeaux" {
		t.Errorf("Resolve() = %q, want Bordeaux", got)
	}
	if hits.Load() != 0 {
		t.Errorf("network calls = %d, want 0 when offline resolver answers", hits.Load())
	}
}

func TestService_Resolve_PersistsAcrossInstances(t *testing.T) {
	var hits atomic.Int64
	server := reverseServer(t, "Libourne", &hits)
	defer server.Close()

	cache := testCache(t)

	resolver := NewNominatimResolver()
	resolver.baseURL = server.URL
	svc := NewService(cache, resolver)

	if got := svc.Resolve(context.Background(), 44.9180, -0.2430); got != "Libourne" {
		t.Fatalf("Resolve() = %q, want Libourne", got)
	}

	// A fresh service over the same cache must not touch the network
	svc2 := NewService(cache, NewNominatimResolver())
	if got := svc2.Resolve(context.Background(), 44.9180, -0.2430); got != "Libourne" {
		t.Errorf("second instance Resolve() = %q, want Libourne", got)
	}
	if hits.Load() != 1 {
		t.Errorf("network calls = %d, want 1 across both instances", hits.Load())
	}
}

func TestService_Resolve_FailureDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	resolver := NewNominatimResolver()
	resolver.baseURL = server.URL

	svc := NewService(testCache(t), resolver)

	if got := svc.Resolve(context.Background(), 45.0, -0.6); got != "" {
		t.Errorf("Resolve() on failing backend = %q, want empty string", got)
	}
}

func TestPickLabel(t *testing.T) {
	tests := []struct {
		name     string
		build    func() reverseResponse
		expected string
	}{
		{
			name: "city wins over town",
			build: func() reverseResponse {
				var r reverseResponse
				r.Address.City = "Bordeaux"
				r.Address.Town = "Pessac"
				return r
			},
			expected: "Bordeaux",
		},
		{
			name: "village when nothing above",
			build: func() reverseResponse {
				var r reverseResponse
				r.Address.Village = "Bages"
				return r
			},
			expected: "Bages",
		},
		{
			name: "state county composite",
			build: func() reverseResponse {
				var r reverseResponse
				r.Address.State = "Nouvelle-Aquitaine"
				r.Address.County = "Gironde"
				return r
			},
			expected: "Nouvelle-Aquitaine, Gironde",
		},
		{
			name: "generic name as last resort",
			build: func() reverseResponse {
				var r reverseResponse
				r.Name = "Dordogne"
				return r
			},
			expected: "Dordogne",
		},
		{
			name:     "empty response",
			build:    func() reverseResponse { return reverseResponse{} },
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickLabel(tt.build()); got != tt.expected {
				t.Errorf("pickLabel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOfflineResolver(t *testing.T) {
	r := NewOfflineResolver()

	name, err := r.ReverseGeocode(context.Background(), 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("ReverseGeocode() error = %v", err)
	}
	if name != "Paris" {
		t.Errorf("ReverseGeocode(Paris center) = %q, want Paris", name)
	}

	name, _ = r.ReverseGeocode(context.Background(), 10.0, 10.0)
	if name != "" {
		t.Errorf("ReverseGeocode(open ocean) = %q, want empty", name)
	}
}
