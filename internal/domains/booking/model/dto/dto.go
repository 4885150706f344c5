package dto

import (
	"net/http"
	"strings"
	"time"

	"corpbooking/internal/domains/booking/conflict"
	"corpbooking/internal/domains/booking/model"
	"corpbooking/shared"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"
	gModel "corpbooking/shared/model"
	"corpbooking/shared/timezone"
	"corpbooking/shared/validator"

	"github.com/google/uuid"
)

const (
	QueryStatus        = "status"
	QueryResourceKind  = "resource_kind"
	QueryResourceID    = "resource_id"
	QueryResourceName  = "resource_name"
	QueryRequesterName = "requester_name"
	QueryStart         = "start"
	QueryEnd           = "end"
	QueryName          = "name"
)

type CreateBookingRequest struct {
	ResourceKind  string `json:"resource_kind"  validate:"required,oneof=vehicle meeting_room training_center"`
	ResourceName  string `json:"resource_name"  validate:"required,notblank,max=100"`
	ResourceID    string `json:"resource_id"    validate:"omitempty,uuid"`
	RequesterName string `json:"requester_name" validate:"required,notblank,max=100"`
	Division      string `json:"division"       validate:"required,notblank,max=100"`
	Purpose       string `json:"purpose"        validate:"required,notblank,max=500"`
	Destination   string `json:"destination"    validate:"omitempty,max=255"`
	StartTime     string `json:"start_time"     validate:"required"`
	EndTime       string `json:"end_time"       validate:"required"`
	DurationUnit  string `json:"duration_unit"  validate:"required,oneof=hours days"`
}

// ToModel builds a pending booking. Timestamps accept RFC3339 or datetime-local input.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	start, end, err := parseRange(c.StartTime, c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	var resourceID *string
	if c.ResourceID != "" {
		id := c.ResourceID
		resourceID = &id
	}

	now := timezone.Now()

	return model.Booking{
		ID:            uuid.NewString(),
		ResourceKind:  model.ResourceKind(c.ResourceKind),
		ResourceName:  strings.TrimSpace(c.ResourceName),
		ResourceID:    resourceID,
		RequesterName: strings.TrimSpace(c.RequesterName),
		Division:      strings.TrimSpace(c.Division),
		Purpose:       strings.TrimSpace(c.Purpose),
		Destination:   c.Destination,
		StartTime:     start,
		EndTime:       end,
		DurationUnit:  model.DurationUnit(c.DurationUnit),
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: user,
			UpdatedBy: user,
		},
	}, nil
}

// UpdateBookingRequest is the admin patch. Status is applied through the
// lifecycle transition, the remaining fields are written as given.
type UpdateBookingRequest struct {
	Status        string `json:"status"`
	RequesterName string `db:"requester_name" json:"requester_name" validate:"omitempty,notblank,max=100"`
	Division      string `db:"division"       json:"division"       validate:"omitempty,notblank,max=100"`
	Purpose       string `db:"purpose"        json:"purpose"        validate:"omitempty,notblank,max=500"`
	Destination   string `db:"destination"    json:"destination"    validate:"omitempty,max=255"`
}

func (u UpdateBookingRequest) HasFields() bool {
	return u.RequesterName != "" || u.Division != "" || u.Purpose != "" || u.Destination != ""
}

// AvailabilityRequest is the read-only conflict probe.
type AvailabilityRequest struct {
	Ref   model.ResourceRef
	Start time.Time
	End   time.Time
}

func (a *AvailabilityRequest) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	ref, err := refFromQuery(query.Get(QueryResourceID), query.Get(QueryResourceKind), query.Get(QueryResourceName))
	if err != nil {
		return err
	}

	start, end, err := parseRange(query.Get(QueryStart), query.Get(QueryEnd))
	if err != nil {
		return err
	}

	a.Ref = ref
	a.Start = start
	a.End = end

	return nil
}

func refFromQuery(resourceID, resourceKind, resourceName string) (model.ResourceRef, error) {
	if resourceID != "" {
		if err := validator.ValidateVar(resourceID, "uuid"); err != nil {
			return nil, failure.BadRequestFromString("resource_id must be a valid UUID")
		}

		return model.ByID{ID: resourceID}, nil
	}

	if strings.TrimSpace(resourceName) == "" {
		return nil, model.ErrMissingResource
	}

	var kind model.ResourceKind

	if resourceKind != "" {
		parsed, err := model.ParseResourceKind(resourceKind)
		if err != nil {
			return nil, err
		}

		kind = parsed
	}

	return model.ByName{Kind: kind, Name: strings.TrimSpace(resourceName)}, nil
}

func parseRange(startValue, endValue string) (start, end time.Time, err error) {
	start, err = shared.ParseTime(startValue)
	if err != nil {
		return start, end, failure.BadRequestFromString("start_time: " + err.Error())
	}

	end, err = shared.ParseTime(endValue)
	if err != nil {
		return start, end, failure.BadRequestFromString("end_time: " + err.Error())
	}

	if err = conflict.ValidateRange(start, end); err != nil {
		return start, end, err
	}

	return start, end, nil
}

// ListFilter narrows the booking listing. Empty fields are ignored.
type ListFilter struct {
	Status        string
	ResourceKind  string
	ResourceID    string
	RequesterName string
}

func (f *ListFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.Status = query.Get(QueryStatus)
	f.ResourceKind = query.Get(QueryResourceKind)
	f.ResourceID = query.Get(QueryResourceID)
	f.RequesterName = strings.TrimSpace(query.Get(QueryRequesterName))

	if f.Status != "" {
		if _, err := model.ParseStatus(f.Status); err != nil {
			return err
		}
	}

	if f.ResourceKind != "" {
		if _, err := model.ParseResourceKind(f.ResourceKind); err != nil {
			return err
		}
	}

	if f.ResourceID != "" {
		if err := validator.ValidateVar(f.ResourceID, "uuid"); err != nil {
			return failure.BadRequestFromString("resource_id must be a valid UUID")
		}
	}

	return nil
}

func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if f.Status != "" {
		group.Filters = append(group.Filters, eq(model.FieldStatus, f.Status))
	}

	if f.ResourceKind != "" {
		group.Filters = append(group.Filters, eq(model.FieldResourceKind, f.ResourceKind))
	}

	if f.ResourceID != "" {
		group.Filters = append(group.Filters, eq(model.FieldResourceID, f.ResourceID))
	}

	if f.RequesterName != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRequesterName,
			Operator: gDto.FilterOperatorLike,
			Value:    f.RequesterName,
			Table:    model.TableName,
		})
	}

	return group
}

func eq(field, value string) gDto.Filter {
	return gDto.Filter{
		Field:    field,
		Operator: gDto.FilterOperatorEq,
		Value:    value,
		Table:    model.TableName,
	}
}

// ListParams applies the listing order, newest first unless a known column is requested.
func ListParams(r *http.Request) gDto.QueryParams {
	params := gDto.QueryParams{}
	params.FromRequest(r, false)
	params.RestrictSort(
		[]string{model.FieldCreatedAt, model.FieldStartTime, model.FieldEndTime, model.FieldRequesterName},
		model.FieldCreatedAt,
		gDto.SortDirDesc,
	)

	return params
}

type BookingResponse struct {
	ID            string  `json:"id"`
	ResourceKind  string  `json:"resource_kind"`
	ResourceName  string  `json:"resource_name"`
	ResourceID    *string `json:"resource_id"`
	RequesterName string  `json:"requester_name"`
	Division      string  `json:"division"`
	Purpose       string  `json:"purpose"`
	Destination   string  `json:"destination,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationUnit  string  `json:"duration_unit"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ResourceKind = string(model.ResourceKind)
	r.ResourceName = model.ResourceName
	r.ResourceID = model.ResourceID
	r.RequesterName = model.RequesterName
	r.Division = model.Division
	r.Purpose = model.Purpose
	r.Destination = model.Destination
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.DurationUnit = string(model.DurationUnit)
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Bookings = FromModels(models)
}

type AvailabilityResponse struct {
	Available bool              `json:"available"`
	Message   string            `json:"message"`
	Conflicts []BookingResponse `json:"conflicts"`
}

type StatsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func (s *StatsResponse) FromCounts(counts map[model.Status]int) {
	s.Pending = counts[model.StatusPending]
	s.Approved = counts[model.StatusApproved]
	s.Rejected = counts[model.StatusRejected]
	s.Total = s.Pending + s.Approved + s.Rejected
}
