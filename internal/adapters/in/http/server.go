// Package http exposes the REST surface of the dispatch service. Handlers
// translate requests into commands and queries; domain errors are mapped to
// HTTP statuses at this boundary and never leak stack details to clients.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerUserHandler commands.RegisterUserCommandHandler
	loginUserHandler    commands.LoginUserCommandHandler
	placeOrderHandler   commands.PlaceOrderCommandHandler
	advanceOrderHandler commands.AdvanceOrderStatusCommandHandler

	// Query handlers
	pendingOrdersHandler  queries.GetPendingOrdersQueryHandler
	customerOrdersHandler queries.GetCustomerOrdersQueryHandler
	orderHistoryHandler   queries.GetOrderHistoryQueryHandler

	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	registerUserHandler commands.RegisterUserCommandHandler,
	loginUserHandler commands.LoginUserCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderStatusCommandHandler,
	pendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	customerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
	logger *zap.Logger,
) *Server {
	return &Server{
		registerUserHandler:   registerUserHandler,
		loginUserHandler:      loginUserHandler,
		placeOrderHandler:     placeOrderHandler,
		advanceOrderHandler:   advanceOrderHandler,
		pendingOrdersHandler:  pendingOrdersHandler,
		customerOrdersHandler: customerOrdersHandler,
		orderHistoryHandler:   orderHistoryHandler,
		logger:                logger,
	}
}

// RegisterRoutes wires every REST route onto the echo instance. The realtime
// upgrade route is registered separately by the composition root.
func (s *Server) RegisterRoutes(e *echo.Echo, tokens TokenValidator) {
	e.GET("/health", s.Health)

	api := e.Group("/api")
	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)

	orders := api.Group("/orders", BearerAuth(tokens))
	orders.POST("", s.PlaceOrder, RequireRole(account.RoleCustomer))
	orders.GET("/customer/:id", s.GetCustomerOrders)
	orders.GET("/history/:userId", s.GetOrderHistory)
	orders.GET("/pending", s.GetPendingOrders, RequireRole(account.RoleDelivery))
	orders.PUT("/:id/status", s.AdvanceOrderStatus, RequireRole(account.RoleDelivery))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=customer delivery"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func userResponseFrom(user *account.User) userResponse {
	return userResponse{
		ID:    user.ID().String(),
		Name:  user.Name(),
		Email: user.Email(),
		Role:  user.Role().String(),
	}
}

// Register handles POST /api/auth/register.
func (s *Server) Register(ctx echo.Context) error {
	var req registerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	role, err := account.RoleFromString(req.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRegisterUserCommand(req.Name, req.Email, req.Password, role)
	if err != nil {
		return respondError(ctx, err)
	}

	user, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.Warn("register failed", zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, userResponseFrom(user))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login handles POST /api/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	cmd, err := commands.NewLoginUserCommand(req.Email, req.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	user, token, err := s.loginUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  userResponseFrom(user),
	})
}

type placeOrderRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Location string `json:"location" validate:"required"`
}

// PlaceOrder handles POST /api/orders. Customer role only; the order's
// customer is always the authenticated actor.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing bearer token")
	}

	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(actor.ID, req.Product, req.Quantity, req.Location)
	if err != nil {
		return respondError(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.Error("place order failed", zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, queries.OrderResponseFromDomain(placed))
}

type advanceOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	// Optional; when present it must name the authenticated actor.
	DeliveryPartnerID string `json:"deliveryPartnerId"`
}

// AdvanceOrderStatus handles PUT /api/orders/:id/status. Delivery role only.
// The advancing courier is the authenticated actor; a body naming a
// different delivery partner is rejected rather than trusted.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing bearer token")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req advanceOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if req.DeliveryPartnerID != "" && req.DeliveryPartnerID != actor.ID.String() {
		return respondError(ctx, errs.NewForbiddenError(actor.Role.String(), "advance order on behalf of another partner"))
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, actor.ID, next)
	if err != nil {
		return respondError(ctx, err)
	}

	advanced, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.Warn("advance order status failed",
			zap.String("orderId", orderID.String()),
			zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queries.OrderResponseFromDomain(advanced))
}

// GetPendingOrders handles GET /api/orders/pending. Delivery role only.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	query := queries.NewGetPendingOrdersQuery()

	orders, err := s.pendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("get pending orders failed", zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCustomerOrders handles GET /api/orders/customer/:id. Any authenticated
// actor may read any customer's list; the route carries no ownership check.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("get customer orders failed", zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrderHistory handles GET /api/orders/history/:userId.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(userID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("get order history failed", zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}
