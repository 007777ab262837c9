package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/domain"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/query"
)

// accountHeader carries the caller's identity. There is no authentication
// layer here; the deployment fronts this service with one.
const accountHeader = "X-Account-ID"

type errorResponse struct {
	Error string `json:"error"`
}

func respondErr(c echo.Context, err error) error {
	return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrTicketNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotTicketOwner), errors.Is(err, domain.ErrNotOrganizer):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInsufficientPayment):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrEventNotActive),
		errors.Is(err, domain.ErrEventCancelled),
		errors.Is(err, domain.ErrEventCompleted),
		errors.Is(err, domain.ErrEventNotCompleted),
		errors.Is(err, domain.ErrTicketAlreadyUsed),
		errors.Is(err, domain.ErrTicketAlreadyRefunded),
		errors.Is(err, domain.ErrSoldOut),
		errors.Is(err, domain.ErrTooManyTickets),
		errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func caller(c echo.Context) (uuid.UUID, error) {
	raw := c.Request().Header.Get(accountHeader)
	if raw == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "missing "+accountHeader+" header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+accountHeader+" header")
	}
	return id, nil
}

func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.PathParam("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func pathAccount(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid account id")
	}
	return id, nil
}

// --- Events ---

func (s *Server) handleCreateEvent(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	var req struct {
		Name         string `json:"name"`
		Price        int64  `json:"price"`
		TotalTickets uint32 `json:"total_tickets"`
		MetadataCID  string `json:"metadata_cid"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := s.dispatcher.CreateEvent(who, req.Name, req.Price, req.TotalTickets, req.MetadataCID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"event_id": id})
}

func (s *Server) handleGetEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	resp, err := s.queries.GetEvent(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleBuyTicket(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Payment int64 `json:"payment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ticketID, err := s.dispatcher.BuyTicket(who, eventID, req.Payment)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"ticket_id": ticketID})
}

func (s *Server) handleCancelEvent(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.dispatcher.CancelEvent(who, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"event_id": id, "status": domain.EventCancelled.String()})
}

func (s *Server) handleCompleteEvent(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.dispatcher.CompleteEvent(who, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"event_id": id, "status": domain.EventCompleted.String()})
}

func (s *Server) handleWithdrawEarnings(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	amount, err := s.dispatcher.WithdrawEarnings(who, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"event_id": id, "amount": amount})
}

func (s *Server) handleEscrow(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	resp, err := s.queries.Escrow(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// --- Tickets ---

func (s *Server) handleGetTicket(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	resp, err := s.queries.GetTicket(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTransferTicket(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		To uuid.UUID `json:"to"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.To == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing transfer recipient")
	}

	if err := s.dispatcher.TransferTicket(who, id, req.To); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ticket_id": id, "owner": req.To})
}

func (s *Server) handleUseTicket(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.dispatcher.UseTicket(who, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ticket_id": id, "status": domain.TicketUsed.String()})
}

func (s *Server) handleRefundTicket(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.dispatcher.RefundTicket(who, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ticket_id": id, "status": domain.TicketRefunded.String()})
}

func (s *Server) handleCancelTicket(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.dispatcher.CancelTicket(who, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ticket_id": id, "status": domain.TicketRefunded.String()})
}

// --- Accounts ---

func (s *Server) handleMyTickets(c echo.Context) error {
	owner, err := pathAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.queries.MyTickets(owner))
}

func (s *Server) handleJournalHistory(c echo.Context) error {
	account, err := pathAccount(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := s.queries.JournalHistory(c.Request().Context(), account, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("journal history query failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "journal history unavailable")
	}
	if entries == nil {
		entries = []query.JournalHistoryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// --- Global ---

func (s *Server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.queries.Stats())
}

func (s *Server) handleAdmin(c echo.Context) error {
	return c.JSON(http.StatusOK, s.queries.Admin())
}
