package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-phoneshop-pos/internal/handler"
	"go-phoneshop-pos/internal/middleware"
	"go-phoneshop-pos/internal/mirror"
	"go-phoneshop-pos/internal/model"
	"go-phoneshop-pos/internal/repository"
	"go-phoneshop-pos/internal/service"
	"go-phoneshop-pos/internal/ws"
	"go-phoneshop-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Remote record store
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Sale{}, &model.User{}, &model.Privilege{}, &model.Role{})

	// 3. Local mirror store (offline catalog)
	mirrorPath := os.Getenv("MIRROR_DB_PATH")
	if mirrorPath == "" {
		mirrorPath = "mirror.db"
	}
	mirrorStore, err := mirror.Open(mirrorPath)
	if err != nil {
		log.Fatal("Failed to open mirror store: ", err)
	}
	if err := mirrorStore.Seed(mirror.DefaultCatalog); err != nil {
		log.Printf("Warning: Failed to seed mirror catalog: %v", err)
	}

	// 4. Seed privileges, roles, and the default admin
	seedPrivilegesRolesAndAdmin(db)

	// 5. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Wiring
	branch := os.Getenv("BRANCH_NAME")
	if branch == "" {
		branch = "Maks Mobiles"
	}

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	invService := service.NewInventoryService(productRepo, wsHub)
	checkoutService := service.NewCheckoutService(productRepo, saleRepo, db, wsHub, branch)
	analyticsService := service.NewAnalyticsService(saleRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	invHandler := handler.NewInventoryHandler(invService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	mirrorHandler := handler.NewMirrorHandler(mirrorStore)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 7. Fiber
	app := fiber.New(fiber.Config{
		AppName: "Phone Shop POS v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Inventory
	protected.Get("/products", middleware.RequirePrivilege("product:view"), invHandler.GetProducts)
	protected.Get("/products/grouped", middleware.RequirePrivilege("product:view"), invHandler.GetGroupedStock)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), invHandler.StockIn)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), invHandler.DeleteProduct)

	// Cart & checkout
	protected.Get("/cart", middleware.RequirePrivilege("sale:create"), checkoutHandler.GetCart)
	protected.Post("/cart", middleware.RequirePrivilege("sale:create"), checkoutHandler.AddToCart)
	protected.Delete("/cart/:imei", middleware.RequirePrivilege("sale:create"), checkoutHandler.RemoveFromCart)
	protected.Post("/checkout", middleware.RequirePrivilege("sale:create"), checkoutHandler.Checkout)

	// Sales history
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), analyticsHandler.GetSales)
	protected.Get("/sales/export", middleware.RequirePrivilege("export:view"), analyticsHandler.ExportSales)
	protected.Delete("/sales/:id", middleware.RequirePrivilege("sale:void"), checkoutHandler.VoidSale)

	// Analytics
	protected.Get("/analytics/totals", middleware.RequirePrivilege("analytics:view"), analyticsHandler.GetTotals)
	protected.Get("/analytics/daily", middleware.RequirePrivilege("analytics:view"), analyticsHandler.GetDailySales)
	protected.Get("/analytics/by-day", middleware.RequirePrivilege("analytics:view"), analyticsHandler.GetSalesByDay)
	protected.Get("/analytics/chart", middleware.RequirePrivilege("analytics:view"), analyticsHandler.GetSalesChart)
	protected.Get("/analytics/stats", middleware.RequirePrivilege("analytics:view"), analyticsHandler.GetDashboardStats)

	// Offline mirror catalog
	protected.Get("/mirror/products", middleware.RequirePrivilege("product:view"), mirrorHandler.GetProducts)
	protected.Post("/mirror/products", middleware.RequirePrivilege("mirror:manage"), mirrorHandler.CreateProduct)
	protected.Put("/mirror/products/:id", middleware.RequirePrivilege("mirror:manage"), mirrorHandler.EditProduct)
	protected.Delete("/mirror/products/:id", middleware.RequirePrivilege("mirror:manage"), mirrorHandler.DeleteProduct)
	protected.Get("/mirror/low-stock", middleware.RequirePrivilege("product:view"), mirrorHandler.GetLowStock)

	// User management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles & privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket
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
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
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

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and the
// admin account if they don't exist.
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	allPrivileges, _ := privilegeRepo.FindAll()

	// MASTER_ADMIN holds everything.
	masterRole, err := roleRepo.FindByCode(model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(&masterRole).Association("Privileges").Replace(allPrivileges)
		log.Println("MASTER_ADMIN role assigned all privileges")
	}

	// ADMIN runs the shop but not the staff accounts.
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		adminPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			switch p.Code {
			case "user:create", "user:update", "user:delete", "user:update_privilege":
				continue
			}
			adminPrivileges = append(adminPrivileges, p)
		}
		db.Model(&adminRole).Association("Privileges").Replace(adminPrivileges)
		log.Println("ADMIN role assigned limited privileges")
	}

	// CASHIER sells and looks at stock.
	cashierRole, err := roleRepo.FindByCode(model.RoleCashier)
	if err == nil && len(cashierRole.Privileges) == 0 {
		cashierPrivileges, _ := privilegeRepo.FindByCodes(model.CashierPrivilegeCodes)
		db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
		log.Println("CASHIER role assigned sale privileges")
	}

	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		masterRole, _ := roleRepo.FindByCode(model.RoleMasterAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Master Administrator",
			RoleID:     &masterRole.ID,
			IsActive:   true,
			Privileges: masterRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (MASTER_ADMIN)")
		}
	}
}
