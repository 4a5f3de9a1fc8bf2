package dataset

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"sanggwon/internal/model"
)

func TestCacheLoadsOnce(t *testing.T) {
	var calls int32
	cache := NewCache(func() (*Table, LoadReport, error) {
		atomic.AddInt32(&calls, 1)
		return NewTable([]model.Record{{Year: 2024, Quarter: 1}}), LoadReport{ID: "first"}, nil
	})

	if cache.Loaded() {
		t.Fatal("cache should load lazily")
	}

	var wg sync.WaitGroup
	tables := make([]*Table, 16)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tb, err := cache.Get()
			if err != nil {
				t.Errorf("Get failed: %v", err)
			}
			tables[i] = tb
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("loader called %d times, want 1", n)
	}
	for _, tb := range tables {
		if tb != tables[0] {
			t.Fatal("Get should return the same table")
		}
	}
	if cache.Report().ID != "first" {
		t.Errorf("report = %+v", cache.Report())
	}
}

func TestCacheReloadFailureKeepsTable(t *testing.T) {
	fail := false
	version := 0
	cache := NewCache(func() (*Table, LoadReport, error) {
		if fail {
			return nil, LoadReport{}, &DataFormatError{Source: "x.csv", Err: errors.New("broken")}
		}
		version++
		return NewTable(nil), LoadReport{TotalRows: version}, nil
	})

	first, err := cache.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	second, err := cache.Reload()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if second == first || cache.Report().TotalRows != 2 {
		t.Error("Reload should install a fresh table")
	}

	fail = true
	if _, err := cache.Reload(); err == nil {
		t.Fatal("Reload should fail")
	}
	current, err := cache.Get()
	if err != nil || current != second {
		t.Error("failed reload must keep the previous table")
	}
	if cache.Report().TotalRows != 2 {
		t.Errorf("report should not change on failure: %+v", cache.Report())
	}
}

func TestCacheInitialFailure(t *testing.T) {
	cache := NewCache(func() (*Table, LoadReport, error) {
		return nil, LoadReport{}, errors.New("boom")
	})
	if _, err := cache.Get(); err == nil {
		t.Fatal("Get should return the load error")
	}
	if cache.Loaded() {
		t.Error("cache should not be marked loaded after failure")
	}
}
