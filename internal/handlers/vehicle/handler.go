package vehicle

import (
	"net/http"

	"corpbooking/infras/otel"
	serviceLogDto "corpbooking/internal/domains/servicelog/model/dto"
	serviceLogService "corpbooking/internal/domains/servicelog/service"
	"corpbooking/internal/domains/vehicle/model/dto"
	"corpbooking/internal/domains/vehicle/service"
	"corpbooking/shared"
	"corpbooking/shared/constant"
	"corpbooking/shared/validator"
	"corpbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Vehicle
	serviceLog serviceLogService.ServiceLog
	otel       otel.Otel
}

func New(service service.Vehicle, serviceLog serviceLogService.ServiceLog, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		serviceLog: serviceLog,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vehicles", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVehicle)
		routerGroup.Get("/", handler.GetVehicles)
		routerGroup.Get("/{id}", handler.GetVehicleByID)
		routerGroup.Patch("/{id}", handler.UpdateVehicle)
		routerGroup.Delete("/{id}", handler.DeleteVehicle)
		routerGroup.Get("/{id}/services", handler.GetVehicleServices)
		routerGroup.Post("/{id}/services", handler.CreateVehicleService)
	})
}

// CreateVehicle registers a fleet vehicle.
// @Summary Create a new vehicle
// @Description Accepts JSON (photo as a base64 data url) or multipart form data with a photo file.
// @Tags Vehicle
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateVehicleRequest false "Create Vehicle Request"
// @Param photo formData file false "Vehicle photo"
// @Success 201 {object} response.Data[dto.VehicleResponse] "Vehicle created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles [post]
// @Security CookieAuth
func (handler *Handler) CreateVehicle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVehicle")
	defer scope.End()

	req, release, err := shared.BindRequest[dto.CreateVehicleRequest](request, dto.FormPhoto)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to bind create vehicle request")
		response.WithError(writer, err)

		return
	}
	defer release()

	vehicle, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create vehicle")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Vehicle created by " + user)

	response.WithJSON(writer, http.StatusCreated, vehicle)
}

// GetVehicles lists vehicles, active first then by name.
// @Summary Get all vehicles
// @Tags Vehicle
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param vehicle_type query string false "Filter by vehicle type"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetVehiclesResponse] "List of vehicles"
// @Failure 500 {object} response.Error
// @Router /v1/vehicles [get]
func (handler *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicles")
	defer scope.End()

	vehicles, err := handler.service.GetAll(ctx, dto.ListParams(r), dto.ListFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vehicles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, vehicles)
}

// GetVehicleByID retrieves a vehicle by its ID.
// @Summary Get a vehicle by ID
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Data[dto.VehicleResponse] "Vehicle details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id} [get]
func (handler *Handler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicleByID")
	defer scope.End()

	vehicle, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, vehicle)
}

// UpdateVehicle applies a partial update, including deactivation.
// @Summary Update a vehicle by ID
// @Tags Vehicle
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body dto.UpdateVehicleRequest false "Update Vehicle Request"
// @Param photo formData file false "Vehicle photo"
// @Success 200 {object} response.Data[dto.VehicleResponse] "Updated vehicle"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id} [patch]
// @Security CookieAuth
func (handler *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVehicle")
	defer scope.End()

	req, release, err := shared.BindRequest[dto.UpdateVehicleRequest](r, dto.FormPhoto)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to bind update vehicle request")
		response.WithError(w, err)

		return
	}
	defer release()

	vehicle, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update vehicle")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle that no booking references.
// @Summary Delete a vehicle by ID
// @Description Refused with 409 while bookings reference the vehicle; deactivate it instead.
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Message "Vehicle deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id} [delete]
// @Security CookieAuth
func (handler *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVehicle")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete vehicle")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Vehicle deleted successfully")
}

// GetVehicleServices returns the maintenance log of a vehicle, latest service first.
// @Summary Vehicle service log
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Data[serviceLogDto.VehicleServicesResponse] "Vehicle and its services"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/services [get]
// @Security CookieAuth
func (handler *Handler) GetVehicleServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicleServices")
	defer scope.End()

	services, err := handler.serviceLog.List(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vehicle services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// CreateVehicleService appends a maintenance entry.
// @Summary Add a vehicle service entry
// @Tags Vehicle
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body serviceLogDto.CreateServiceLogRequest true "Service entry"
// @Success 201 {object} response.Data[serviceLogDto.ServiceLogResponse] "Service entry created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/services [post]
// @Security CookieAuth
func (handler *Handler) CreateVehicleService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVehicleService")
	defer scope.End()

	req := serviceLogDto.CreateServiceLogRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	entry, err := handler.serviceLog.Create(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create vehicle service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, entry)
}
