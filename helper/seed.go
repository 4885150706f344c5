package helper

import (
	"context"
	"fmt"
	"io"

	adminDto "corpbooking/internal/domains/admin/model/dto"
	adminRepo "corpbooking/internal/domains/admin/repository"
	roomDto "corpbooking/internal/domains/room/model/dto"
	roomRepo "corpbooking/internal/domains/room/repository"
	vehicleDto "corpbooking/internal/domains/vehicle/model/dto"
	vehicleRepo "corpbooking/internal/domains/vehicle/repository"
	"corpbooking/shared/password"
	"corpbooking/shared/validator"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const seedUser = "seeder"

type SeedVehicle struct {
	Name        string `yaml:"name"`
	VehicleType string `yaml:"vehicle_type"`
	PlateNumber string `yaml:"plate_number"`
	Brand       string `yaml:"brand"`
	Year        *int   `yaml:"year"`
}

type SeedRoom struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Location string `yaml:"location"`
	Capacity int    `yaml:"capacity"`
}

// SeedFixture is the layout of the seed YAML file.
type SeedFixture struct {
	Admins   []adminDto.CreateAdminRequest `yaml:"admins"`
	Vehicles []SeedVehicle                 `yaml:"vehicles"`
	Rooms    []SeedRoom                    `yaml:"rooms"`
}

// SeedResult counts inserted rows; entries that already exist are skipped.
type SeedResult struct {
	Admins   int
	Vehicles int
	Rooms    int
}

func ParseSeedFixture(reader io.Reader) (SeedFixture, error) {
	var fixture SeedFixture

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&fixture); err != nil {
		return SeedFixture{}, fmt.Errorf("failed to decode seed fixture: %w", err)
	}

	return fixture, nil
}

type Seeder struct {
	adminRepo   adminRepo.Admin
	vehicleRepo vehicleRepo.Vehicle
	roomRepo    roomRepo.Room
}

func NewSeeder(adminRepo adminRepo.Admin, vehicleRepo vehicleRepo.Vehicle, roomRepo roomRepo.Room) *Seeder {
	return &Seeder{
		adminRepo:   adminRepo,
		vehicleRepo: vehicleRepo,
		roomRepo:    roomRepo,
	}
}

func (s *Seeder) Seed(ctx context.Context, fixture SeedFixture) (res SeedResult, err error) {
	for _, admin := range fixture.Admins {
		inserted, err := s.seedAdmin(ctx, admin)
		if err != nil {
			return res, err
		}

		if inserted {
			res.Admins++
		}
	}

	for _, vehicle := range fixture.Vehicles {
		inserted, err := s.seedVehicle(ctx, vehicle)
		if err != nil {
			return res, err
		}

		if inserted {
			res.Vehicles++
		}
	}

	for _, room := range fixture.Rooms {
		inserted, err := s.seedRoom(ctx, room)
		if err != nil {
			return res, err
		}

		if inserted {
			res.Rooms++
		}
	}

	return res, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, req adminDto.CreateAdminRequest) (bool, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return false, fmt.Errorf("invalid admin %q: %w", req.Username, err)
	}

	admin := req.ToModel(seedUser, "")

	exist, err := s.adminRepo.Exist(ctx, adminRepo.ByUsername(admin.Username))
	if err != nil {
		return false, fmt.Errorf("failed to check admin %q: %w", admin.Username, err)
	}

	if exist {
		log.Info().Str("username", admin.Username).Msg("admin already exists, skipping")

		return false, nil
	}

	if admin.PasswordHash, err = password.Hash(req.Password); err != nil {
		return false, fmt.Errorf("failed to hash password of %q: %w", admin.Username, err)
	}

	if err = s.adminRepo.Insert(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to insert admin %q: %w", admin.Username, err)
	}

	return true, nil
}

func (s *Seeder) seedVehicle(ctx context.Context, seed SeedVehicle) (bool, error) {
	req := vehicleDto.CreateVehicleRequest{
		Name:        seed.Name,
		VehicleType: seed.VehicleType,
		PlateNumber: seed.PlateNumber,
		Brand:       seed.Brand,
		Year:        seed.Year,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return false, fmt.Errorf("invalid vehicle %q: %w", seed.PlateNumber, err)
	}

	vehicle := req.ToModel(seedUser, "")
	exist, err := s.vehicleRepo.Exist(ctx, vehicleRepo.ByPlate(vehicle.PlateNumber))
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle %q: %w", vehicle.PlateNumber, err)
	}

	if exist {
		log.Info().Str("plate_number", vehicle.PlateNumber).Msg("vehicle already exists, skipping")

		return false, nil
	}

	if err = s.vehicleRepo.Insert(ctx, vehicle); err != nil {
		return false, fmt.Errorf("failed to insert vehicle %q: %w", vehicle.PlateNumber, err)
	}

	return true, nil
}

func (s *Seeder) seedRoom(ctx context.Context, seed SeedRoom) (bool, error) {
	req := roomDto.CreateRoomRequest{
		Name:     seed.Name,
		Kind:     seed.Kind,
		Location: seed.Location,
		Capacity: seed.Capacity,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return false, fmt.Errorf("invalid room %q: %w", seed.Name, err)
	}

	room := req.ToModel(seedUser, "")
	exist, err := s.roomRepo.Exist(ctx, roomRepo.ByName(room.Name))
	if err != nil {
		return false, fmt.Errorf("failed to check room %q: %w", room.Name, err)
	}

	if exist {
		log.Info().Str("name", room.Name).Msg("room already exists, skipping")

		return false, nil
	}

	if err = s.roomRepo.Insert(ctx, room); err != nil {
		return false, fmt.Errorf("failed to insert room %q: %w", room.Name, err)
	}

	return true, nil
}
