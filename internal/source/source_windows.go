//go:build windows

package source

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/danmuck/tdhctl/internal/tdh"
	"github.com/danmuck/tdhctl/internal/wire"
)

var (
	modtdh = windows.NewLazySystemDLL("tdh.dll")

	procTdhEnumerateProviders              = modtdh.NewProc("TdhEnumerateProviders")
	procTdhEnumerateManifestProviderEvents = modtdh.NewProc("TdhEnumerateManifestProviderEvents")
	procTdhGetManifestEventInformation     = modtdh.NewProc("TdhGetManifestEventInformation")
)

// statusInvalidParameter mirrors ERROR_INVALID_PARAMETER for arguments
// rejected before reaching the native call.
const statusInvalidParameter = wire.Status(87)

// System returns the live metadata source backed by tdh.dll.
func System() (tdh.Source, error) {
	if err := modtdh.Load(); err != nil {
		return nil, fmt.Errorf("source: load tdh.dll: %w", err)
	}
	return sysSource{}, nil
}

type sysSource struct{}

func (sysSource) EnumerateProviders(buf []byte, size *uint32) wire.Status {
	r1, _, _ := procTdhEnumerateProviders.Call(
		bufPtr(buf),
		uintptr(unsafe.Pointer(size)),
	)
	return wire.Status(r1)
}

func (sysSource) EnumerateEvents(providerGUID string, buf []byte, size *uint32) wire.Status {
	g, err := tdh.ParseGUID(providerGUID)
	if err != nil {
		return statusInvalidParameter
	}
	r1, _, _ := procTdhEnumerateManifestProviderEvents.Call(
		uintptr(unsafe.Pointer(&g[0])),
		bufPtr(buf),
		uintptr(unsafe.Pointer(size)),
	)
	return wire.Status(r1)
}

func (sysSource) EventDetail(providerGUID string, desc tdh.EventDescriptor, buf []byte, size *uint32) wire.Status {
	g, err := tdh.ParseGUID(providerGUID)
	if err != nil {
		return statusInvalidParameter
	}
	d := desc.Bytes()
	r1, _, _ := procTdhGetManifestEventInformation.Call(
		uintptr(unsafe.Pointer(&g[0])),
		uintptr(unsafe.Pointer(&d[0])),
		bufPtr(buf),
		uintptr(unsafe.Pointer(size)),
	)
	return wire.Status(r1)
}

func bufPtr(buf []byte) uintptr {
	if len(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}
