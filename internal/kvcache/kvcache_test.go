package kvcache

import (
	"path/filepath"
	"testing"

	"github.com/fishit/fishit/internal/database"
	"github.com/fishit/fishit/internal/models"
)

func testCache(t *testing.T) *Cache {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cache, err := New(db)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return cache
}

func TestCache_SetGet(t *testing.T) {
	cache := testCache(t)

	in := models.UserLocation{
		Coordinates: models.Coordinates{Latitude: 44.84, Longitude: -0.58},
		CityLabel:   "Bordeaux",
		ResolvedAt:  1700000000000,
	}
	cache.Set(KeyUserLocation, in)

	var out models.UserLocation
	if !cache.Get(KeyUserLocation, &out) {
		t.Fatal("Get() returned miss for just-written key")
	}
	if out.CityLabel != "Bordeaux" {
		t.Errorf("CityLabel = %q, want %q", out.CityLabel, "Bordeaux")
	}
	if out.Coordinates.Latitude != 44.84 {
		t.Errorf("Latitude = %v, want 44.84", out.Coordinates.Latitude)
	}
}

func TestCache_GetMissing(t *testing.T) {
	cache := testCache(t)

	var out map[string]string
	if cache.Get("no-such-key", &out) {
		t.Error("Get() on absent key should return false")
	}
}

func TestCache_Overwrite(t *testing.T) {
	cache := testCache(t)

	cache.Set("k", "first")
	cache.Set("k", "second")

	var out string
	if !cache.Get("k", &out) {
		t.Fatal("Get() missed after overwrite")
	}
	if out != "second" {
		t.Errorf("value = %q, want %q", out, "second")
	}
}

func TestCache_CorruptedEntryIsMiss(t *testing.T) {
	cache := testCache(t)

	// Write malformed JSON directly, bypassing Set
	_, err := cache.db.Exec("INSERT INTO kv_cache (key, value) VALUES (?, ?)", "bad", "{not json")
	if err != nil {
		t.Fatalf("inserting corrupted row: %v", err)
	}

	var out map[string]string
	if cache.Get("bad", &out) {
		t.Error("Get() on corrupted entry should return false, not error")
	}
}

func TestCache_Delete(t *testing.T) {
	cache := testCache(t)

	cache.Set("k", 42)
	cache.Delete("k")

	var out int
	if cache.Get("k", &out) {
		t.Error("Get() after Delete should miss")
	}
}

func TestStationKey(t *testing.T) {
	if got := StationKey("92709"); got != "station/92709" {
		t.Errorf("StationKey(92709) = %q, want station/92709", got)
	}
}
