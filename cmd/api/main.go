package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-pos/internal/handler"
	"go-inventory-pos/internal/middleware"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/notify"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/service"
	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/database"
	"go-inventory-pos/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	if err := logger.Init(); err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.Expense{},
		&model.AuditLog{},
		&model.RefreshToken{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Optional Redis for login rate limiting
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	}

	// 5. Notification pipeline: ws hub + best-effort dispatcher
	wsHub := ws.NewHub()
	go wsHub.Run()
	dispatcher := notify.NewDispatcher(notify.NewLineClient(), wsHub)
	go dispatcher.Run()

	// 6. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditLogRepo(db)
	refreshRepo := repository.NewRefreshTokenRepo(db)

	auditLogger := service.NewAuditService(auditRepo)
	invService := service.NewInventoryService(productRepo, txRepo, db, auditLogger, dispatcher)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, auditLogger)
	expenseService := service.NewExpenseService(expenseRepo, auditLogger)
	reportService := service.NewReportService(productRepo, txRepo, expenseRepo)
	authService := service.NewAuthService(userRepo, refreshRepo, auditLogger)
	adminService := service.NewAdminService(db, userRepo, auditLogger)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(invService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	dashHandler := handler.NewDashboardHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	adminHandler := handler.NewAdminHandler(adminService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory POS v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New(cors.Config{AllowCredentials: true, AllowOriginsFunc: func(string) bool { return true }}))
	app.Use(middleware.Metrics())

	// Prometheus exposition
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimiter(redisClient), authHandler.Register)
	auth.Post("/login", middleware.RateLimiter(redisClient), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/me", middleware.RequireAuth(), authHandler.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())
	admin := middleware.RequireRole(model.RoleAdmin)

	// Dashboard
	protected.Get("/dashboard/summary", dashHandler.GetSummary)
	protected.Get("/dashboard/profit-loss", dashHandler.GetProfitLoss)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", admin, productHandler.CreateProduct)
	protected.Post("/products/batch", admin, productHandler.BatchCreateProducts)
	protected.Patch("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", admin, productHandler.DeleteProduct)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", admin, categoryHandler.CreateCategory)
	protected.Put("/categories/:id", admin, categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", admin, categoryHandler.DeleteCategory)

	// Expenses
	protected.Get("/expenses", expenseHandler.GetExpenses)
	protected.Post("/expenses", admin, expenseHandler.CreateExpense)
	protected.Delete("/expenses/:id", admin, expenseHandler.DeleteExpense)

	// Audit logs
	protected.Get("/audit-logs", admin, auditHandler.GetAuditLogs)

	// Admin
	protected.Post("/admin/clear-data", admin, adminHandler.ClearData)

	// WebSocket route for stock alerts
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	dispatcher.Close()

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if it doesn't exist yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email: email,
		Name:  "Administrator",
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}
