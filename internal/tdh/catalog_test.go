package tdh_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danmuck/tdhctl/internal/tdh"
	"github.com/danmuck/tdhctl/internal/tdh/tdhtest"
	"github.com/danmuck/tdhctl/internal/wire"
)

func TestCatalogProvidersSettle(t *testing.T) {
	src := tdhtest.NewSource()
	for _, e := range sampleEntries() {
		src.AddProvider(e)
	}
	cat := tdh.NewCatalog(src)

	if cat.ProvidersCached() {
		t.Fatalf("cached before first call")
	}
	first, err := cat.Providers()
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := cat.Providers()
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("calls disagree (-first +second):\n%s", diff)
	}
	if !cat.ProvidersCached() {
		t.Fatalf("not cached after success")
	}
	if calls := src.Calls(tdh.OpEnumerateProviders); calls != 2 {
		t.Fatalf("source saw %d calls, want one negotiation", calls)
	}
}

func TestCatalogProviderEventsSettlePerKey(t *testing.T) {
	src := tdhtest.NewSource()
	src.AddProvider(
		tdhtest.ProviderEntry{GUID: kernelProcGUID, Name: "Microsoft-Windows-Kernel-Process"},
		tdhtest.EventInfo{
			ProviderGUID: kernelProcGUID,
			Descriptor:   tdh.EventDescriptor{ID: 1, Keyword: 0x10},
			EventName:    "ProcessStart",
		},
	)
	src.AddProvider(tdhtest.ProviderEntry{GUID: dnsClientGUID, Name: "Microsoft-Windows-DNS-Client"})
	cat := tdh.NewCatalog(src)

	if cat.EventsCached(kernelProcGUID) {
		t.Fatalf("cached before first call")
	}
	first, err := cat.ProviderEvents(kernelProcGUID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := cat.ProviderEvents(kernelProcGUID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("calls disagree (-first +second):\n%s", diff)
	}
	if !cat.EventsCached(kernelProcGUID) {
		t.Fatalf("not cached after success")
	}
	if cat.EventsCached(dnsClientGUID) {
		t.Fatalf("untouched key reported cached")
	}
	if calls := src.Calls(tdh.OpEnumerateEvents); calls != 2 {
		t.Fatalf("source saw %d calls, want one negotiation", calls)
	}

	if _, err := cat.ProviderEvents(dnsClientGUID); err != nil {
		t.Fatalf("second key: %v", err)
	}
	if calls := src.Calls(tdh.OpEnumerateEvents); calls != 4 {
		t.Fatalf("keys not independent: %d calls", calls)
	}
}

func TestCatalogDoesNotCachePanics(t *testing.T) {
	src := tdhtest.NewSource()
	src.AddProvider(
		tdhtest.ProviderEntry{GUID: kernelProcGUID, Name: "Microsoft-Windows-Kernel-Process"},
		tdhtest.EventInfo{
			ProviderGUID: kernelProcGUID,
			Descriptor:   tdh.EventDescriptor{ID: 1},
			EventName:    "ProcessStart",
			Properties: []tdhtest.Property{
				{
					Name:   "broken",
					InType: uint16(tdh.InTypeBinary),
					Flags:  tdh.PropertyParamFixedLength | tdh.PropertyParamFixedCount,
					Length: 4,
					Count:  2,
				},
			},
		},
	)
	cat := tdh.NewCatalog(src)

	recovered := 0
	for i := 0; i < 2; i++ {
		func() {
			defer func() {
				if recover() != nil {
					recovered++
				}
			}()
			cat.ProviderEvents(kernelProcGUID)
		}()
	}
	if recovered != 2 {
		t.Fatalf("recovered %d panics, want 2", recovered)
	}
	if cat.EventsCached(kernelProcGUID) {
		t.Fatalf("panicking decode was cached")
	}
	if calls := src.Calls(tdh.OpEventDetail); calls != 4 {
		t.Fatalf("source saw %d detail calls, want two full negotiations", calls)
	}
}

func TestCatalogDoesNotCacheFailures(t *testing.T) {
	src := tdhtest.NewSource()
	for _, e := range sampleEntries() {
		src.AddProvider(e)
	}
	src.FailProviders = wire.Status(5)
	cat := tdh.NewCatalog(src)

	if _, err := cat.Providers(); !errors.Is(err, wire.ErrSizeQueryFailed) {
		t.Fatalf("expected ErrSizeQueryFailed, got %v", err)
	}
	if cat.ProvidersCached() {
		t.Fatalf("failure cached")
	}

	src.FailProviders = 0
	got, err := cat.Providers()
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("retry returned %d providers", len(got))
	}
	if !cat.ProvidersCached() {
		t.Fatalf("retry success not cached")
	}
}
