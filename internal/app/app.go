package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hris-backend/internal/attendance"
	"hris-backend/internal/auth"
	"hris-backend/internal/department"
	"hris-backend/internal/employee"
	"hris-backend/internal/leave"
	"hris-backend/internal/messaging/kafka"
	"hris-backend/internal/notification"
	"hris-backend/internal/review"
	"hris-backend/internal/salary"
	"hris-backend/internal/shared/connection"
	"hris-backend/internal/shared/counter"
)

// BuildApp wires infrastructure, migrates the schema and registers every
// module's routes on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connectDatabase()
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}

func connectDatabase() (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&department.Department{},
		&employee.Employee{},
		&counter.Counter{},
		&leave.LeaveRequest{},
		&review.PerformanceReview{},
		&attendance.Attendance{},
		&salary.SalarySlip{},
		&notification.Notification{},
		&kafka.OutboxEventModel{},
	)
}
