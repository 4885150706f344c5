package booking

import (
	"net/http"

	"corpbooking/infras/otel"
	auditDto "corpbooking/internal/domains/audit/model/dto"
	auditService "corpbooking/internal/domains/audit/service"
	"corpbooking/internal/domains/booking/model"
	"corpbooking/internal/domains/booking/model/dto"
	"corpbooking/internal/domains/booking/service"
	"corpbooking/shared/constant"
	"corpbooking/shared/timezone"
	"corpbooking/shared/validator"
	"corpbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const exportFileLayout = "bookings-20060102-1504.xlsx"

type Handler struct {
	service service.Booking
	audit   auditService.Audit
	otel    otel.Otel
}

func New(service service.Booking, audit auditService.Audit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		audit:   audit,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
		routerGroup.Get("/{id}/history", handler.GetBookingHistory)
	})

	router.Get("/availability", handler.CheckAvailability)
	router.Get("/status", handler.GetRequesterStatus)
	router.Get("/admin/stats", handler.GetStats)
	router.Get("/admin/bookings/export", handler.ExportBookings)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Submit a booking request. It is stored as pending unless it overlaps an approved booking of the same resource.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Overlapping approved bookings are listed under conflicts"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		withBookingError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + booking.ID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings retrieves bookings, newest first.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filters, ordered by creation time descending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param resource_kind query string false "Filter by resource kind (vehicle, meeting_room, training_center)"
// @Param resource_id query string false "Filter by resource ID"
// @Param requester_name query string false "Case-insensitive requester name substring"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	filter := dto.ListFilter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, dto.ListParams(r), filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking changes the status and/or metadata of a booking.
// @Summary Update a booking by ID
// @Description Approve, reject or reopen a booking, or correct requester metadata.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security CookieAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		withBookingError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Booking updated by " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// DeleteBooking removes a booking permanently.
// @Summary Delete a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security CookieAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// GetBookingHistory lists the recorded audit trail of a booking.
// @Summary Booking audit history
// @Description Status changes and edits of a booking, oldest first.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[auditDto.HistoryResponse] "Audit history"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/history [get]
// @Security CookieAuth
func (handler *Handler) GetBookingHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingHistory")
	defer scope.End()

	var history auditDto.HistoryResponse

	history, err := handler.audit.History(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, history)
}

// CheckAvailability reports whether a resource is free in a time range.
// @Summary Check resource availability
// @Description Only approved bookings block. Either resource_id or resource_name is required.
// @Tags Booking
// @Produce json
// @Param resource_id query string false "Resource ID"
// @Param resource_name query string false "Resource name"
// @Param resource_kind query string false "Resource kind"
// @Param start query string true "Range start (RFC3339 or YYYY-MM-DDTHH:MM)"
// @Param end query string true "Range end (RFC3339 or YYYY-MM-DDTHH:MM)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{}
	if err := req.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
}

// GetRequesterStatus lets a requester look up their own bookings by name.
// @Summary Requester booking status
// @Tags Booking
// @Produce json
// @Param name query string true "Requester name"
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings of the requester"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/status [get]
func (handler *Handler) GetRequesterStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequesterStatus")
	defer scope.End()

	bookings, err := handler.service.GetByRequester(ctx, r.URL.Query().Get(dto.QueryName))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetStats returns booking counts per status.
// @Summary Booking statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse] "Counts per status"
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats [get]
// @Security CookieAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// ExportBookings downloads the filtered listing as a spreadsheet.
// @Summary Export bookings
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Filter by status"
// @Param resource_kind query string false "Filter by resource kind"
// @Param resource_id query string false "Filter by resource ID"
// @Param requester_name query string false "Requester name substring"
// @Success 200 {file} file "xlsx workbook"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/export [get]
// @Security CookieAuth
func (handler *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportBookings")
	defer scope.End()

	filter := dto.ListFilter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	content, err := handler.service.Export(ctx, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export bookings")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypeXLSX, timezone.Now().Format(exportFileLayout), content)
}

// withBookingError adds the overlapping bookings to a conflict response.
func withBookingError(w http.ResponseWriter, err error) {
	if conflict, ok := model.AsConflict(err); ok {
		response.WithErrorDetails(w, err, map[string]any{
			"conflicts": dto.FromModels(conflict.Conflicts),
		})

		return
	}

	response.WithError(w, err)
}
