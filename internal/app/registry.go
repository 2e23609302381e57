package app

import (
	"database/sql"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hris-backend/internal/attendance"
	"hris-backend/internal/auth"
	"hris-backend/internal/department"
	"hris-backend/internal/employee"
	"hris-backend/internal/identity"
	"hris-backend/internal/leave"
	"hris-backend/internal/messaging/kafka"
	"hris-backend/internal/middleware"
	"hris-backend/internal/notification"
	"hris-backend/internal/review"
	"hris-backend/internal/salary"
	"hris-backend/internal/shared/counter"
	"hris-backend/internal/storage"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	identityRepo := identity.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	reviewRepo := review.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Identity & storage ---
	resolver := identity.NewResolver(identityRepo)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads/leave-photos"
	}
	fileStore, err := storage.NewLocalStore(uploadDir)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	departmentService := department.NewService(departmentRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, resolver, fileStore)
	reviewService := review.NewService(reviewRepo, resolver)
	attendanceService := attendance.NewService(attendanceRepo, resolver)
	salaryService := salary.NewService(salaryRepo, resolver, rdb)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	reviewHandler := review.NewHandler(reviewService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	salaryHandler := salary.NewHandler(salaryService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler)
		review.RegisterRoutes(api, reviewHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		salary.RegisterRoutes(api, salaryHandler, rdb)
		notification.RegisterRoutes(api, notificationHandler)
	}

	return nil
}
