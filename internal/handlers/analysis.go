package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/funnelworks/conversion-analytics-service/internal/analysis"
	"github.com/funnelworks/conversion-analytics-service/internal/auth"
	"github.com/funnelworks/conversion-analytics-service/internal/models"
	"github.com/funnelworks/conversion-analytics-service/internal/store"
)

// RegisterAnalysisRoutes registers the serving-path endpoint.
//
// GET /analysis?start_event=...&conversion_event=...&granularity=...&from=...&to=...
// - Requires X-API-Key (tenant context)
// - start_event and conversion_event are the caller-supplied metric
//   identifiers; the engine itself is domain-agnostic
// - from/to are optional RFC3339 pre-filter bounds, half-open [from,to)
func RegisterAnalysisRoutes(r gin.IRoutes, st *store.PostgresStore, defaultGranularity analysis.Granularity) {
	r.GET("/analysis", func(c *gin.Context) {
		tenantID := auth.TenantID(c)
		if tenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		startEvent := c.Query("start_event")
		conversionEvent := c.Query("conversion_event")

		// Required query params per contract.
		if startEvent == "" || conversionEvent == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_event and conversion_event are required"})
			return
		}
		if startEvent == conversionEvent {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_event and conversion_event must differ"})
			return
		}

		granularity := defaultGranularity
		if raw := c.Query("granularity"); raw != "" {
			g, err := analysis.ParseGranularity(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			granularity = g
		}

		var from, to time.Time
		if fromStr := c.Query("from"); fromStr != "" {
			t, err := time.Parse(time.RFC3339, fromStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
				return
			}
			from = t.UTC()
		}
		if toStr := c.Query("to"); toStr != "" {
			t, err := time.Parse(time.RFC3339, toStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
				return
			}
			to = t.UTC()
		}

		// Validate window to avoid confusing results.
		if !from.IsZero() && !to.IsZero() && !from.Before(to) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be < to"})
			return
		}

		// The engine needs both streams fully materialized before it runs,
		// so fetch them concurrently and wait for both.
		var startEvents, conversionEvents []analysis.RawEvent
		eg, ctx := errgroup.WithContext(c.Request.Context())
		eg.Go(func() error {
			var err error
			startEvents, err = st.FetchEntityEvents(ctx, tenantID, startEvent, from, to)
			return err
		})
		eg.Go(func() error {
			var err error
			conversionEvents, err = st.FetchEntityEvents(ctx, tenantID, conversionEvent, from, to)
			return err
		})
		if err := eg.Wait(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		result, err := analysis.Analyze(startEvents, conversionEvents, granularity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.AnalysisResponse{
			StartEvent:      startEvent,
			ConversionEvent: conversionEvent,
			Granularity:     string(granularity),
			Result:          result,
		})
	})
}
