//go:build wireinject
// +build wireinject

package di

import (
	"corpbooking/config"
	"corpbooking/helper"
	"corpbooking/infras/jwt"
	"corpbooking/infras/kafka"
	"corpbooking/infras/otel"
	"corpbooking/infras/postgres"
	"corpbooking/infras/redis"
	"corpbooking/infras/s3"
	"corpbooking/permissions"
	"corpbooking/shared/cache"
	"corpbooking/transport/http"
	"corpbooking/transport/http/middleware"
	"corpbooking/transport/http/router"

	adminRepository "corpbooking/internal/domains/admin/repository"
	auditRepository "corpbooking/internal/domains/audit/repository"
	auditService "corpbooking/internal/domains/audit/service"
	auditWorker "corpbooking/internal/domains/audit/worker"
	authService "corpbooking/internal/domains/auth/service"
	bookingEvent "corpbooking/internal/domains/booking/event"
	bookingRepository "corpbooking/internal/domains/booking/repository"
	bookingService "corpbooking/internal/domains/booking/service"
	roomRepository "corpbooking/internal/domains/room/repository"
	roomService "corpbooking/internal/domains/room/service"
	serviceLogRepository "corpbooking/internal/domains/servicelog/repository"
	serviceLogService "corpbooking/internal/domains/servicelog/service"
	vehicleRepository "corpbooking/internal/domains/vehicle/repository"
	vehicleService "corpbooking/internal/domains/vehicle/service"

	authHandler "corpbooking/internal/handlers/auth"
	bookingHandler "corpbooking/internal/handlers/booking"
	roomHandler "corpbooking/internal/handlers/room"
	vehicleHandler "corpbooking/internal/handlers/vehicle"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingEvent.New,
	bookingService.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
	serviceLogRepository.New,
	serviceLogService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var authDomain = wire.NewSet(
	adminRepository.New,
	authService.New,
)

var auditDomain = wire.NewSet(
	auditRepository.New,
	auditService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	vehicleDomain,
	roomDomain,
	authDomain,
	auditDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	roomHandler.New,
	vehicleHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *auditWorker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		auditDomain,
		auditWorker.New,
	)

	return &auditWorker.Worker{}
}

func InitializeSeeder() *helper.Seeder {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		adminRepository.New,
		vehicleRepository.New,
		roomRepository.New,
		helper.NewSeeder,
	)

	return &helper.Seeder{}
}
