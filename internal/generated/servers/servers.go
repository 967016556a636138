// Package servers provides primitives to interact with the automail HTTP API:
// the wire types, the ServerInterface the status adapter implements, parameter
// binding wrappers and the embedded OpenAPI document.
package servers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/swaggo/swag"
)

// Status defines model for Status.
type Status struct {
	Complete  bool   `json:"complete"`
	Delivered int    `json:"delivered"`
	Dropped   int    `json:"dropped"`
	InFlight  int    `json:"inFlight"`
	RunId     string `json:"runId"`
	Submitted int    `json:"submitted"`
	Tick      int    `json:"tick"`
}

// Robot defines model for Robot.
type Robot struct {
	Capacity         int     `json:"capacity"`
	CurrentFloor     int     `json:"currentFloor"`
	DeliveryItemId   *string `json:"deliveryItemId,omitempty"`
	DestinationFloor int     `json:"destinationFloor"`
	Dispatched       bool    `json:"dispatched"`
	FragileCount     int     `json:"fragileCount"`
	Id               string  `json:"id"`
	Kind             string  `json:"kind"`
	Load             int     `json:"load"`
	State            string  `json:"state"`
}

// Mail defines model for Mail.
type Mail struct {
	Arrival     int    `json:"arrival"`
	Destination int    `json:"destination"`
	Fragile     bool   `json:"fragile"`
	Id          string `json:"id"`
	Priority    int    `json:"priority"`
	Weight      int    `json:"weight"`
}

// Mailroom defines model for Mailroom.
type Mailroom struct {
	Items       []Mail `json:"items"`
	LightBudget int    `json:"lightBudget"`
}

// NewMail defines model for NewMail.
type NewMail struct {
	Destination int  `json:"destination"`
	Fragile     bool `json:"fragile,omitempty"`
	Priority    *int `json:"priority,omitempty"`
	Weight      int  `json:"weight"`
}

// MailReceipt defines model for MailReceipt.
type MailReceipt struct {
	Arrival int    `json:"arrival"`
	Id      string `json:"id"`
}

// Delivery defines model for Delivery.
type Delivery struct {
	Arrival     int     `json:"arrival"`
	DeliveredAt int     `json:"deliveredAt"`
	Destination int     `json:"destination"`
	ItemId      string  `json:"itemId"`
	Priority    int     `json:"priority"`
	Score       float64 `json:"score"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetDeliveriesParams defines parameters for GetDeliveries.
type GetDeliveriesParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// GetDeliveries lists recorded deliveries of the run.
	// (GET /api/v1/deliveries)
	GetDeliveries(ctx echo.Context, params GetDeliveriesParams) error
	// SubmitMail hands a new item to the mailroom at the current tick.
	// (POST /api/v1/mail)
	SubmitMail(ctx echo.Context) error
	// GetPendingMail lists mail waiting in the mailroom.
	// (GET /api/v1/mail/pending)
	GetPendingMail(ctx echo.Context) error
	// GetRobots lists every robot in roster order.
	// (GET /api/v1/robots)
	GetRobots(ctx echo.Context) error
	// RecallRobot aborts a robot's run.
	// (POST /api/v1/robots/{robotId}/recall)
	RecallRobot(ctx echo.Context, robotId string) error
	// GetStatus reports the clock and item counters of the run.
	// (GET /api/v1/status)
	GetStatus(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetDeliveries converts echo context to params.
func (w *ServerInterfaceWrapper) GetDeliveries(ctx echo.Context) error {
	var params GetDeliveriesParams

	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetDeliveries(ctx, params)
}

func (w *ServerInterfaceWrapper) SubmitMail(ctx echo.Context) error {
	return w.Handler.SubmitMail(ctx)
}

func (w *ServerInterfaceWrapper) GetPendingMail(ctx echo.Context) error {
	return w.Handler.GetPendingMail(ctx)
}

func (w *ServerInterfaceWrapper) GetRobots(ctx echo.Context) error {
	return w.Handler.GetRobots(ctx)
}

// RecallRobot converts echo context to params.
func (w *ServerInterfaceWrapper) RecallRobot(ctx echo.Context) error {
	var robotId string

	err := runtime.BindStyledParameterWithLocation("simple", false, "robotId", runtime.ParamLocationPath, ctx.Param("robotId"), &robotId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter robotId: %s", err))
	}

	return w.Handler.RecallRobot(ctx, robotId)
}

func (w *ServerInterfaceWrapper) GetStatus(ctx echo.Context) error {
	return w.Handler.GetStatus(ctx)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/deliveries", wrapper.GetDeliveries)
	router.POST(baseURL+"/api/v1/mail", wrapper.SubmitMail)
	router.GET(baseURL+"/api/v1/mail/pending", wrapper.GetPendingMail)
	router.GET(baseURL+"/api/v1/robots", wrapper.GetRobots)
	router.POST(baseURL+"/api/v1/robots/:robotId/recall", wrapper.RecallRobot)
	router.GET(baseURL+"/api/v1/status", wrapper.GetStatus)
}

//go:embed openapi.yaml
var spec []byte

// RawSpec returns the embedded OpenAPI document as written.
func RawSpec() []byte {
	out := make([]byte, len(spec))
	copy(out, spec)
	return out
}

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// RegisterSwagger publishes doc to swag so the swagger UI can serve it.
// Only the first call has an effect; swag rejects duplicate registrations.
func RegisterSwagger(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}
