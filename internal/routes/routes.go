package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"laundry-system/internal/controllers"
	"laundry-system/internal/jobs"
	"laundry-system/internal/listeners"
	"laundry-system/internal/repositories"
	"laundry-system/internal/services"
	"laundry-system/pkg/config"
	"laundry-system/pkg/eventbus"
	"laundry-system/pkg/middleware"
	"laundry-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей и вешает маршруты.
// Возвращает фоновую задачу напоминаний, чтобы main мог ее остановить.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) *jobs.PickupReminderJob {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- Репозитории ---
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	itemRepo := repositories.NewOrderItemRepository(dbConn)
	historyRepo := repositories.NewOrderHistoryRepository(dbConn)
	driverRepo := repositories.NewDriverRepository(dbConn)
	customerRepo := repositories.NewCustomerRepository(dbConn)
	storeRepo := repositories.NewStoreRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- Сервисы ---
	numberGen := services.NewOrderNumberGenerator(orderRepo, cfg.Order.NumberPrefix, cfg.Order.NumberMaxAttempts, logger)
	orderService := services.NewOrderService(orderRepo, itemRepo, historyRepo, storeRepo, customerRepo, numberGen, txManager, bus, logger)
	statusService := services.NewOrderStatusService(orderRepo, historyRepo, txManager, bus, logger)
	workshopService := services.NewWorkshopService(orderRepo, itemRepo, txManager, bus, logger)
	workflowService := services.NewDriverWorkflowService(orderRepo, driverRepo, statusService, bus, logger)
	paymentService := services.NewPaymentService(orderRepo, txManager, bus, logger)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, logger)
	dashboardService := services.NewDashboardService(orderRepo, cacheRepo, cfg.Order.StatsCacheTTL, logger)
	reportService := services.NewReportService(orderRepo, logger)
	driverService := services.NewDriverService(driverRepo, logger)
	customerService := services.NewCustomerService(customerRepo, logger)
	storeService := services.NewStoreService(storeRepo, logger)

	// --- Слушатели и фоновые задачи ---
	listeners.NewNotificationListener(notificationService, dashboardService, logger).Register(bus)
	reminderJob := jobs.NewPickupReminderJob(orderRepo, notificationService, cfg.Order.PickupReminderCron, logger)

	// --- Контроллеры ---
	orderController := controllers.NewOrderController(orderService, statusService, logger)
	driverController := controllers.NewDriverController(driverService, workflowService, logger)
	workshopController := controllers.NewWorkshopController(workshopService, logger)
	paymentController := controllers.NewPaymentController(paymentService, logger)
	notificationController := controllers.NewNotificationController(notificationService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	reportController := controllers.NewReportController(reportService, logger)
	customerController := controllers.NewCustomerController(customerService, logger)
	storeController := controllers.NewStoreController(storeService, logger)

	// --- Маршруты ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	secureGroup := api.Group("", authMW.Auth)

	runOrderRouter(secureGroup, orderController, paymentController, workshopController, driverController)
	runDriverRouter(secureGroup, driverController, authMW)
	runWorkshopRouter(secureGroup, workshopController)
	runNotificationRouter(secureGroup, notificationController)
	runDashboardRouter(secureGroup, dashboardController, reportController)
	runDirectoryRouter(secureGroup, customerController, storeController)

	logger.Info("InitRouter: Создание маршрутов завершено")
	return reminderJob
}
