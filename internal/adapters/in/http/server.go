package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"automail/internal/core/application/usecases/commands"
	"automail/internal/core/application/usecases/queries"
	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/generated/servers"
	"automail/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Mailroom is the part of the running simulation the API needs to admit mail
// and to address the ledger.
type Mailroom interface {
	RunID() kernel.UUID
	Building() kernel.Building
	Now() kernel.Tick
	NextMailID() string
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	mailroom Mailroom
	logger   *slog.Logger

	// Command handlers
	submitMailHandler  commands.SubmitMailCommandHandler
	recallRobotHandler commands.RecallRobotCommandHandler

	// Query handlers
	getRunStatusHandler   queries.GetRunStatusQueryHandler
	getAllRobotsHandler   queries.GetAllRobotsQueryHandler
	getPendingMailHandler queries.GetPendingMailQueryHandler
	getDeliveriesHandler  queries.GetDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	mailroom Mailroom,
	submitMailHandler commands.SubmitMailCommandHandler,
	recallRobotHandler commands.RecallRobotCommandHandler,
	getRunStatusHandler queries.GetRunStatusQueryHandler,
	getAllRobotsHandler queries.GetAllRobotsQueryHandler,
	getPendingMailHandler queries.GetPendingMailQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		mailroom:              mailroom,
		logger:                logger.With("component", "http_server"),
		submitMailHandler:     submitMailHandler,
		recallRobotHandler:    recallRobotHandler,
		getRunStatusHandler:   getRunStatusHandler,
		getAllRobotsHandler:   getAllRobotsHandler,
		getPendingMailHandler: getPendingMailHandler,
		getDeliveriesHandler:  getDeliveriesHandler,
	}
}

var _ servers.ServerInterface = (*Server)(nil)

// GetStatus handles GET /api/v1/status - reports the run's clock and counters.
func (s *Server) GetStatus(ctx echo.Context) error {
	status, err := s.getRunStatusHandler.Handle(ctx.Request().Context(), queries.NewGetRunStatusQuery())
	if err != nil {
		return s.internalError(ctx, "Failed to read run status", err)
	}

	return ctx.JSON(http.StatusOK, servers.Status{
		RunId:     status.RunID,
		Tick:      status.Tick,
		Submitted: status.Submitted,
		Dropped:   status.Dropped,
		Delivered: status.Delivered,
		InFlight:  status.InFlight,
		Complete:  status.Complete,
	})
}

// GetRobots handles GET /api/v1/robots - retrieves every robot in roster order.
func (s *Server) GetRobots(ctx echo.Context) error {
	robots, err := s.getAllRobotsHandler.Handle(ctx.Request().Context(), queries.NewGetAllRobotsQuery())
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve robots", err)
	}

	response := make([]servers.Robot, len(robots))
	for i, r := range robots {
		response[i] = servers.Robot{
			Id:               r.ID,
			Kind:             r.Kind,
			State:            r.State,
			CurrentFloor:     r.CurrentFloor,
			DestinationFloor: r.DestinationFloor,
			Dispatched:       r.Dispatched,
			Load:             r.Load,
			Capacity:         r.Capacity,
			FragileCount:     r.FragileCount,
		}
		if r.DeliveryItemID != "" {
			id := r.DeliveryItemID
			response[i].DeliveryItemId = &id
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RecallRobot handles POST /api/v1/robots/{robotId}/recall.
func (s *Server) RecallRobot(ctx echo.Context, robotId string) error {
	cmd, err := commands.NewRecallRobotCommand(robotId)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid robot id: " + err.Error(),
		})
	}

	if err := s.recallRobotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				Code:    http.StatusNotFound,
				Message: fmt.Sprintf("Robot %s not found", robotId),
			})
		}
		return s.internalError(ctx, "Failed to recall robot", err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// SubmitMail handles POST /api/v1/mail - admits an item arriving at the current tick.
func (s *Server) SubmitMail(ctx echo.Context) error {
	var newMail servers.NewMail
	if err := ctx.Bind(&newMail); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	destination := kernel.Floor(newMail.Destination)
	if building := s.mailroom.Building(); !building.Contains(destination) {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid mail data: floor %d is outside %s", destination, building),
		})
	}

	item, err := s.newItem(newMail, destination)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid mail data: " + err.Error(),
		})
	}

	cmd, err := commands.NewSubmitMailCommand(item)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid mail data: " + err.Error(),
		})
	}

	accepted, err := s.submitMailHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.internalError(ctx, "Failed to submit mail", err)
	}
	if !accepted {
		return ctx.JSON(http.StatusUnprocessableEntity, servers.Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "No robot in the roster can carry this mail",
		})
	}

	return ctx.JSON(http.StatusAccepted, servers.MailReceipt{
		Id:      item.ID(),
		Arrival: int(item.Arrival()),
	})
}

// GetPendingMail handles GET /api/v1/mail/pending - lists unassigned mail in fill order.
func (s *Server) GetPendingMail(ctx echo.Context) error {
	pending, err := s.getPendingMailHandler.Handle(ctx.Request().Context(), queries.NewGetPendingMailQuery())
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve pending mail", err)
	}

	items := make([]servers.Mail, len(pending.Items))
	for i, m := range pending.Items {
		items[i] = servers.Mail{
			Id:          m.ID,
			Destination: m.Destination,
			Arrival:     m.Arrival,
			Weight:      m.Weight,
			Fragile:     m.Fragile,
			Priority:    m.Priority,
		}
	}

	return ctx.JSON(http.StatusOK, servers.Mailroom{
		LightBudget: pending.LightBudget,
		Items:       items,
	})
}

// GetDeliveries handles GET /api/v1/deliveries - lists the run's recorded deliveries.
func (s *Server) GetDeliveries(ctx echo.Context, params servers.GetDeliveriesParams) error {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetDeliveriesQuery(s.mailroom.RunID(), limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve deliveries", err)
	}

	response := make([]servers.Delivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = servers.Delivery{
			ItemId:      d.ItemID,
			Destination: d.Destination,
			Arrival:     d.Arrival,
			DeliveredAt: d.DeliveredAt,
			Priority:    d.Priority,
			Score:       d.Score,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) newItem(newMail servers.NewMail, destination kernel.Floor) (*mail.Item, error) {
	id := s.mailroom.NextMailID()
	arrival := s.mailroom.Now()
	if newMail.Priority != nil {
		return mail.NewPriorityItem(id, destination, arrival, newMail.Weight, newMail.Fragile, *newMail.Priority)
	}
	return mail.NewItem(id, destination, arrival, newMail.Weight, newMail.Fragile)
}

func (s *Server) internalError(ctx echo.Context, message string, err error) error {
	s.logger.ErrorContext(ctx.Request().Context(), message, "error", err)
	return ctx.JSON(http.StatusInternalServerError, servers.Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
