package finder

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/bastiangx/titleserve/internal/logger"
	"github.com/bastiangx/titleserve/pkg/ahocorasick"
	"github.com/google/go-cmp/cmp"
)

func TestRuntimeReload(t *testing.T) {
	rt, err := NewRuntime(WithLogger(logger.Discard()), WithTitles("CEO"))
	if err != nil {
		t.Fatalf("NewRuntime() = %v", err)
	}
	if got := texts(t, rt.Current(), "CEO and CTO", true); !cmp.Equal(got, []string{"CEO"}) {
		t.Errorf("initial matches = %v", got)
	}

	if err := rt.Reload(WithLogger(logger.Discard()), WithTitles("CTO")); err != nil {
		t.Fatalf("Reload() = %v", err)
	}
	if got := texts(t, rt.Current(), "CEO and CTO", true); !cmp.Equal(got, []string{"CTO"}) {
		t.Errorf("matches after reload = %v", got)
	}

	err = rt.Reload(WithLogger(logger.Discard()), WithTitles("CFO", ""))
	if !errors.Is(err, ahocorasick.ErrEmptyPattern) {
		t.Fatalf("Reload(empty title) = %v, want ErrEmptyPattern", err)
	}
	if got := texts(t, rt.Current(), "CEO and CTO", true); !cmp.Equal(got, []string{"CTO"}) {
		t.Errorf("failed reload replaced the finder: %v", got)
	}

	// no options reuses the last successful ones
	if err := rt.Reload(); err != nil {
		t.Fatalf("Reload() = %v", err)
	}
	info := rt.Info()
	if info.Builds != 3 || info.Patterns != 1 || info.Backend != "native" {
		t.Errorf("Info() = %+v", info)
	}
}

func TestFindAllBatch(t *testing.T) {
	f := newFinder(t, WithTitles(testTitles...))
	inputs := []string{
		"I am the Senior Vice President",
		"Vice President & CEO",
		"",
		"nothing",
	}
	got, err := f.FindAllBatch(context.Background(), inputs, true, 2)
	if err != nil {
		t.Fatalf("FindAllBatch() = %v", err)
	}
	for i, text := range inputs {
		want, _ := f.FindAll(text, true)
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Errorf("batch result %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	_, err = f.FindAllBatch(context.Background(), []string{"ok", "bad \xff"}, true, 0)
	var scanErr *ScanError
	if !errors.As(err, &scanErr) || scanErr.Offset != 4 {
		t.Errorf("FindAllBatch(invalid) = %v, want ScanError at 4", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.FindAllBatch(ctx, inputs, true, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("FindAllBatch(canceled) = %v, want context.Canceled", err)
	}
}

func TestConcurrentScans(t *testing.T) {
	rt, err := NewRuntime(WithLogger(logger.Discard()), WithIgnoreCase(true))
	if err != nil {
		t.Fatalf("NewRuntime() = %v", err)
	}
	const text = "The Chief Executive Officer met the Vice President of Sales."
	want, err := rt.Current().FindAll(text, true)
	if err != nil {
		t.Fatalf("FindAll() = %v", err)
	}

	var m1, m2 runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m1)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				got, err := rt.Current().FindAll(text, true)
				if err != nil {
					errs <- err
					return
				}
				if !cmp.Equal(want, got) {
					errs <- fmt.Errorf("goroutine %d iteration %d: got %v", g, i, got)
					return
				}
			}
		}()
	}
	// reload under load, same options
	if err := rt.Reload(); err != nil {
		t.Fatalf("Reload() = %v", err)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	runtime.GC()
	runtime.ReadMemStats(&m2)
	growth := int64(m2.HeapInuse) - int64(m1.HeapInuse)
	t.Logf("heap in use grew by %d bytes after concurrent scans", growth)
	if growth > 64<<20 {
		t.Errorf("heap grew by %d bytes, scans appear to leak", growth)
	}
}
