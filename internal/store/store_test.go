package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/skycastlabs/skycast/internal/weather"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "skycast.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKVRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set("k", "v1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := kv.Set("k", "v2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	value, ok, err := kv.Get("k")
	if err != nil || !ok || value != "v2" {
		t.Fatalf("expected v2, got %q ok=%v err=%v", value, ok, err)
	}

	if err := kv.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := kv.Get("k"); ok {
		t.Fatal("expected key to be gone after delete")
	}
	if err := kv.Delete("k"); err != nil {
		t.Fatalf("deleting an absent key should not fail: %v", err)
	}
}

func TestPreferencesDefaults(t *testing.T) {
	kv := openTestKV(t)
	prefs := NewPreferences(kv, nil)

	if got := prefs.UnitSystem(); got != weather.UnitsMetric {
		t.Errorf("expected metric default, got %s", got)
	}
	if got := prefs.Theme(); got != weather.ThemeLight {
		t.Errorf("expected light default without a probe, got %s", got)
	}
}

func TestPreferencesThemeDerivedOnceFromProbe(t *testing.T) {
	kv := openTestKV(t)

	probeDark := true
	probeCalls := 0
	prefs := NewPreferences(kv, func() bool {
		probeCalls++
		return probeDark
	})

	if got := prefs.Theme(); got != weather.ThemeDark {
		t.Fatalf("expected dark from probe, got %s", got)
	}
	if probeCalls != 1 {
		t.Fatalf("expected one probe call, got %d", probeCalls)
	}

	// The derived value must be persisted immediately: a later read must not
	// consult the probe again even if the host preference flipped.
	probeDark = false
	if got := prefs.Theme(); got != weather.ThemeDark {
		t.Errorf("expected persisted dark theme, got %s", got)
	}
	if probeCalls != 1 {
		t.Errorf("expected probe untouched on second read, got %d calls", probeCalls)
	}
}

func TestPreferencesExplicitChoiceSticks(t *testing.T) {
	kv := openTestKV(t)
	prefs := NewPreferences(kv, func() bool { return true })

	if err := prefs.SetTheme(weather.ThemeLight); err != nil {
		t.Fatalf("set theme failed: %v", err)
	}
	if got := prefs.Theme(); got != weather.ThemeLight {
		t.Errorf("explicit choice must win over probe, got %s", got)
	}

	if err := prefs.SetUnitSystem(weather.UnitsImperial); err != nil {
		t.Fatalf("set unit failed: %v", err)
	}
	if got := prefs.UnitSystem(); got != weather.UnitsImperial {
		t.Errorf("expected imperial, got %s", got)
	}
}

func TestRecentRecordDedupesByName(t *testing.T) {
	kv := openTestKV(t)
	recent := NewRecentLocations(kv)

	paris := weather.Location{Name: "Paris, FR", Lat: 48.85, Lon: 2.35}
	lyon := weather.Location{Name: "Lyon, FR", Lat: 45.76, Lon: 4.83}

	for _, loc := range []weather.Location{paris, lyon, paris} {
		if err := recent.Record(loc); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	list := recent.List()
	if len(list) != 2 {
		t.Fatalf("recording a duplicate name must not grow the list, got %d entries", len(list))
	}
	if list[0].Name != "Paris, FR" || list[1].Name != "Lyon, FR" {
		t.Errorf("expected duplicate moved to front, got %v", list)
	}
}

func TestRecentListCappedAtFive(t *testing.T) {
	kv := openTestKV(t)
	recent := NewRecentLocations(kv)

	for i := 0; i < 8; i++ {
		loc := weather.Location{Name: fmt.Sprintf("City %d", i), Lat: float64(i), Lon: float64(i)}
		if err := recent.Record(loc); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	list := recent.List()
	if len(list) != MaxRecent {
		t.Fatalf("expected %d entries, got %d", MaxRecent, len(list))
	}
	if list[0].Name != "City 7" || list[MaxRecent-1].Name != "City 3" {
		t.Errorf("unexpected order after overflow: %v", list)
	}
}

func TestRecentCorruptValueReadsAsEmpty(t *testing.T) {
	kv := openTestKV(t)
	recent := NewRecentLocations(kv)

	if err := kv.Set("recentCities", "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if list := recent.List(); len(list) != 0 {
		t.Fatalf("corrupt value must read as empty, got %v", list)
	}

	// And recording on top of corruption starts a fresh list.
	if err := recent.Record(weather.Location{Name: "Paris, FR"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if list := recent.List(); len(list) != 1 {
		t.Fatalf("expected fresh single-entry list, got %v", list)
	}
}

func TestRecentClear(t *testing.T) {
	kv := openTestKV(t)
	recent := NewRecentLocations(kv)

	if err := recent.Record(weather.Location{Name: "Paris, FR"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := recent.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if list := recent.List(); len(list) != 0 {
		t.Fatalf("expected empty list after clear, got %v", list)
	}
}
