package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/RoyAPena/HeuristicLogix-sub003/docs"
	v1 "github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/middleware"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/config"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository/dao"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	// Services are built once and shared so cross-module calls go through
	// the same instances the handlers use.
	inventorySvc := service.NewInventoryService(repository.NewInventoryRepository(dao.NewInventoryDAO(db)))
	purchasingSvc := service.NewPurchasingService(repository.NewPurchasingRepository(dao.NewPurchasingDAO(db)), inventorySvc)
	financeSvc := service.NewFinanceService(repository.NewFinanceRepository(dao.NewFinanceDAO(db)))
	logisticsSvc := service.NewLogisticsService(repository.NewLogisticsRepository(dao.NewLogisticsDAO(db)), inventorySvc, financeSvc)

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	inventoryHandler := v1.NewInventoryHandler(inventorySvc)
	purchasingHandler := v1.NewPurchasingHandler(purchasingSvc)
	logisticsHandler := v1.NewLogisticsHandler(logisticsSvc)
	financeHandler := v1.NewFinanceHandler(financeSvc)
	devHandler := v1.NewDevHandler(conf.API, service.NewSeedService(inventorySvc, logisticsSvc, financeSvc))

	s.MountHandlers(authHandler, userHandler, inventoryHandler, purchasingHandler, logisticsHandler, financeHandler, devHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	inventoryHandler *v1.InventoryHandler,
	purchasingHandler *v1.PurchasingHandler,
	logisticsHandler *v1.LogisticsHandler,
	financeHandler *v1.FinanceHandler,
	devHandler *v1.DevHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	users := s.Router.Group(basePath, verifyJWT)
	{
		users.GET("/users/me", userHandler.HandleGetCurrentUser)
	}

	inventory := s.Router.Group(basePath+"/inventory", verifyJWT)
	{
		inventory.POST("/categories", inventoryHandler.HandleCreateCategory)
		inventory.GET("/categories", inventoryHandler.HandleListCategories)
		inventory.GET("/categories/:categoryID", inventoryHandler.HandleGetCategory)
		inventory.PUT("/categories/:categoryID", inventoryHandler.HandleUpdateCategory)
		inventory.DELETE("/categories/:categoryID", inventoryHandler.HandleDeleteCategory)

		inventory.POST("/units", inventoryHandler.HandleCreateUnit)
		inventory.GET("/units", inventoryHandler.HandleListUnits)
		inventory.GET("/units/:unitID", inventoryHandler.HandleGetUnit)
		inventory.PUT("/units/:unitID", inventoryHandler.HandleUpdateUnit)
		inventory.DELETE("/units/:unitID", inventoryHandler.HandleDeleteUnit)

		inventory.POST("/warehouses", inventoryHandler.HandleCreateWarehouse)
		inventory.GET("/warehouses", inventoryHandler.HandleListWarehouses)

		inventory.POST("/items", inventoryHandler.HandleCreateItem)
		inventory.GET("/items", inventoryHandler.HandleListItems)
		inventory.GET("/items/:itemID", inventoryHandler.HandleGetItem)
		inventory.PUT("/items/:itemID", inventoryHandler.HandleUpdateItem)
		inventory.DELETE("/items/:itemID", inventoryHandler.HandleDeleteItem)

		inventory.POST("/items/:itemID/conversions", inventoryHandler.HandleCreateConversion)
		inventory.GET("/items/:itemID/conversions", inventoryHandler.HandleListConversions)

		inventory.POST("/items/:itemID/stock/reserve", inventoryHandler.HandleReserveStock)
		inventory.POST("/items/:itemID/stock/release", inventoryHandler.HandleReleaseStock)
		inventory.POST("/items/:itemID/stock/receive", inventoryHandler.HandleReceiveStock)
		inventory.POST("/items/:itemID/stock/verify", inventoryHandler.HandleVerifyStagedStock)
		inventory.POST("/items/:itemID/stock/ship", inventoryHandler.HandleShipStock)
		inventory.GET("/items/:itemID/movements", inventoryHandler.HandleListMovements)

		inventory.POST("/stock/availability", inventoryHandler.HandleCheckAvailability)
	}

	purchasing := s.Router.Group(basePath+"/purchasing", verifyJWT)
	{
		purchasing.POST("/suppliers", purchasingHandler.HandleCreateSupplier)
		purchasing.GET("/suppliers", purchasingHandler.HandleListSuppliers)
		purchasing.GET("/suppliers/:supplierID", purchasingHandler.HandleGetSupplier)
		purchasing.PUT("/suppliers/:supplierID", purchasingHandler.HandleUpdateSupplier)
		purchasing.DELETE("/suppliers/:supplierID", purchasingHandler.HandleDeleteSupplier)

		purchasing.POST("/tax-configs", purchasingHandler.HandleCreateTaxConfig)
		purchasing.GET("/tax-configs", purchasingHandler.HandleListTaxConfigs)

		purchasing.POST("/item-suppliers", purchasingHandler.HandleLinkItemSupplier)
		purchasing.GET("/item-suppliers/:itemID", purchasingHandler.HandleListItemSuppliers)
		purchasing.DELETE("/item-suppliers/:itemID/:supplierID", purchasingHandler.HandleUnlinkItemSupplier)

		purchasing.POST("/orders", purchasingHandler.HandleCreateOrder)
		purchasing.GET("/orders/:orderID", purchasingHandler.HandleGetOrder)
		purchasing.POST("/orders/:orderID/submit", purchasingHandler.HandleSubmitOrder)
		purchasing.POST("/orders/:orderID/receive", purchasingHandler.HandleReceiveOrderLine)
	}

	logistics := s.Router.Group(basePath+"/logistics", verifyJWT)
	{
		logistics.POST("/trucks", logisticsHandler.HandleCreateTruck)
		logistics.GET("/trucks", logisticsHandler.HandleListTrucks)
		logistics.POST("/trucks/suggest", logisticsHandler.HandleSuggestTruck)

		logistics.POST("/taxonomies", logisticsHandler.HandleCreateTaxonomy)
		logistics.GET("/taxonomies", logisticsHandler.HandleListTaxonomies)
		logistics.POST("/taxonomies/:taxonomyID/verify", logisticsHandler.HandleVerifyTaxonomy)

		logistics.POST("/deliveries", logisticsHandler.HandleRecordDelivery)
		logistics.GET("/deliveries", logisticsHandler.HandleListDeliveries)
		logistics.GET("/deliveries/:deliveryID", logisticsHandler.HandleGetDelivery)
	}

	finance := s.Router.Group(basePath+"/finance", verifyJWT)
	{
		finance.POST("/accounts", financeHandler.HandleCreateAccount)
		finance.GET("/accounts", financeHandler.HandleListAccounts)
		finance.GET("/accounts/:accountID", financeHandler.HandleGetAccount)
		finance.PUT("/accounts/:accountID", financeHandler.HandleUpdateAccount)

		finance.POST("/credit-check", financeHandler.HandleCheckCredit)
	}

	dev := s.Router.Group(basePath+"/dev", verifyJWT)
	{
		dev.POST("/seed", devHandler.HandleSeed)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "HeuristicLogix API"
	docs.SwaggerInfo.Description = "Inventory, purchasing, logistics and finance API for construction material distribution."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
