package cmd

import (
	"time"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/auth"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	tokens     *auth.TokenService
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(logger),
		tokens:     auth.NewTokenService(config.JWTSecret, config.JWTExpiration, config.JWTIssuer),
		logger:     logger,
	}
}

func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) TokenService() *auth.TokenService {
	return c.tokens
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateLoginUserCommandHandler() commands.LoginUserCommandHandler {
	return commands.NewLoginUserCommandHandler(c.userUoWFactory(), c.tokens)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *dispatchhttp.Server {
	return dispatchhttp.NewServer(
		c.CreateRegisterUserCommandHandler(),
		c.CreateLoginUserCommandHandler(),
		c.CreatePlaceOrderCommandHandler(),
		c.CreateAdvanceOrderStatusCommandHandler(),
		c.CreateGetPendingOrdersQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateWsHandler() *ws.Handler {
	return ws.NewHandler(c.hub, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	threshold := c.config.StalePendingThreshold
	if threshold <= 0 {
		threshold = 15 * time.Minute
	}
	return jobs.NewJobManager(c.uowFactory, threshold, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
