package server

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/core"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/observability"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/query"
)

// Server is the HTTP/JSON surface over the ticketing engine. Mutations go
// through the dispatcher; reads go through the query service.
type Server struct {
	echo       *echo.Echo
	dispatcher *core.Dispatcher
	queries    *query.QueryService
	health     *observability.HealthChecker
	log        zerolog.Logger
}

func New(dispatcher *core.Dispatcher, queries *query.QueryService, health *observability.HealthChecker, log zerolog.Logger) *Server {
	s := &Server{
		echo:       echo.New(),
		dispatcher: dispatcher,
		queries:    queries,
		health:     health,
		log:        log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	v1 := s.echo.Group("/v1")

	v1.POST("/events", s.handleCreateEvent)
	v1.GET("/events/:id", s.handleGetEvent)
	v1.POST("/events/:id/tickets", s.handleBuyTicket)
	v1.POST("/events/:id/cancel", s.handleCancelEvent)
	v1.POST("/events/:id/complete", s.handleCompleteEvent)
	v1.POST("/events/:id/withdraw", s.handleWithdrawEarnings)
	v1.GET("/events/:id/escrow", s.handleEscrow)

	v1.GET("/tickets/:id", s.handleGetTicket)
	v1.POST("/tickets/:id/transfer", s.handleTransferTicket)
	v1.POST("/tickets/:id/use", s.handleUseTicket)
	v1.POST("/tickets/:id/refund", s.handleRefundTicket)
	v1.POST("/tickets/:id/cancel", s.handleCancelTicket)

	v1.GET("/accounts/:id/tickets", s.handleMyTickets)
	v1.GET("/accounts/:id/journal", s.handleJournalHistory)

	v1.GET("/stats", s.handleStats)
	v1.GET("/admin", s.handleAdmin)

	s.echo.GET("/healthz", wrapStd(http.HandlerFunc(s.health.LivenessHandler)))
	s.echo.GET("/readyz", wrapStd(http.HandlerFunc(s.health.ReadinessHandler)))
	s.echo.GET("/metrics", wrapStd(promhttp.Handler()))
}

// Handler exposes the router for an http.Server (and for tests).
func (s *Server) Handler() http.Handler {
	return s.echo
}

func wrapStd(h http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
