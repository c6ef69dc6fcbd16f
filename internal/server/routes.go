package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/tdhctl/internal/observability"
	"github.com/danmuck/tdhctl/internal/tdh"
	"github.com/danmuck/tdhctl/internal/wire"
)

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"app":     s.app,
			"version": "0.0.1",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/providers", s.handleProviders)
	s.router.GET("/providers/:guid/events", s.handleProviderEvents)
}

func (s *Server) handleProviders(c *gin.Context) {
	hit := s.catalog.ProvidersCached()
	providers, err := s.catalog.Providers()
	observability.RecordCacheLookup("providers", hit)
	if err != nil {
		status, kind := classify(err)
		observability.RecordDecodeFailure(tdh.OpEnumerateProviders, kind)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"count":     len(providers),
	})
}

func (s *Server) handleProviderEvents(c *gin.Context) {
	guid, err := tdh.NormalizeGUID(c.Param("guid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hit := s.catalog.EventsCached(guid)
	events, err := s.catalog.ProviderEvents(guid)
	observability.RecordCacheLookup("events", hit)
	if err != nil {
		status, kind := classify(err)
		observability.RecordDecodeFailure(tdh.OpEnumerateEvents, kind)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"provider_guid": guid,
		"events":        events,
		"count":         len(events),
	})
}

// classify maps a catalog failure to an HTTP status and a metric kind.
// Source refusals are upstream trouble; everything else is a decode
// defect in the returned buffers.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, tdh.ErrInvalidGUID):
		return http.StatusBadRequest, "invalid_guid"
	case errors.Is(err, wire.ErrSizeQueryFailed), errors.Is(err, wire.ErrFillFailed):
		return http.StatusBadGateway, "query_failed"
	case errors.Is(err, wire.ErrArrayOutOfBounds):
		return http.StatusInternalServerError, "array_out_of_bounds"
	case errors.Is(err, wire.ErrStringOffsetOutOfBounds):
		return http.StatusInternalServerError, "string_out_of_bounds"
	case errors.Is(err, tdh.ErrFieldIndexOutOfBounds):
		return http.StatusInternalServerError, "field_index_out_of_bounds"
	case errors.Is(err, tdh.ErrUnknownSchemaSource):
		return http.StatusInternalServerError, "unknown_schema_source"
	default:
		return http.StatusInternalServerError, "unknown"
	}
}
