package dto

import (
	"mime/multipart"
	"net/http"
	"strings"

	"corpbooking/internal/domains/room/model"
	"corpbooking/shared"
	gDto "corpbooking/shared/dto"
	gModel "corpbooking/shared/model"
	"corpbooking/shared/timezone"

	"github.com/google/uuid"
)

const (
	FormName     = "name"
	FormKind     = "kind"
	FormLocation = "location"
	FormCapacity = "capacity"
	FormIsActive = "is_active"
	FormImage    = "image"
)

type CreateRoomRequest struct {
	Name      string                `json:"name"      validate:"required,max=100"`
	Kind      string                `json:"kind"      validate:"required,oneof=meeting_room training_center"`
	Location  string                `json:"location"  validate:"omitempty,max=100"`
	Capacity  int                   `json:"capacity"  validate:"omitempty,min=0"`
	IsActive  *bool                 `json:"is_active"`
	Image     *multipart.FileHeader `json:"-"         swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"         swaggerignore:"true"`
}

func (c *CreateRoomRequest) AttachFile(header *multipart.FileHeader, file multipart.File) {
	c.Image, c.ImageFile = header, file
}

func (c *CreateRoomRequest) FromForm(r *http.Request) {
	c.Name = r.FormValue(FormName)
	c.Kind = r.FormValue(FormKind)
	c.Location = r.FormValue(FormLocation)
	c.IsActive = shared.ConvertStringToBool(r.FormValue(FormIsActive))

	if capacity, err := shared.ConvertStringToInt(r.FormValue(FormCapacity)); err == nil {
		c.Capacity = capacity
	}
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	now := timezone.Now()

	return model.Room{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Kind:     model.Kind(c.Kind),
		Location: c.Location,
		Capacity: c.Capacity,
		ImageURL: imageURL,
		IsActive: active,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: user,
			UpdatedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name      string                `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Kind      string                `db:"kind"      json:"kind"      validate:"omitempty,oneof=meeting_room training_center"`
	Location  string                `db:"location"  json:"location"  validate:"omitempty,max=100"`
	Capacity  *int                  `db:"capacity"  json:"capacity"  validate:"omitempty,min=0"`
	IsActive  *bool                 `db:"is_active" json:"is_active"`
	Image     *multipart.FileHeader `json:"-"                              swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"                              swaggerignore:"true"`
}

func (u *UpdateRoomRequest) AttachFile(header *multipart.FileHeader, file multipart.File) {
	u.Image, u.ImageFile = header, file
}

func (u *UpdateRoomRequest) FromForm(r *http.Request) {
	u.Name = r.FormValue(FormName)
	u.Kind = r.FormValue(FormKind)
	u.Location = r.FormValue(FormLocation)
	u.IsActive = shared.ConvertStringToBool(r.FormValue(FormIsActive))

	if capacity, err := shared.ConvertStringToInt(r.FormValue(FormCapacity)); err == nil {
		u.Capacity = &capacity
	}
}

type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	ImageURL string `json:"image_url,omitempty"`
	IsActive bool   `json:"is_active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Kind = string(model.Kind)
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.ImageURL = model.ImageURL
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

func ListParams(r *http.Request) gDto.QueryParams {
	params := gDto.QueryParams{}
	params.FromRequest(r, true)
	params.RestrictSort([]string{model.FieldName, model.FieldCapacity, model.FieldKind}, model.FieldName, gDto.SortDirAsc)

	return params
}

func ListFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := strings.TrimSpace(query.Get(FormName)); name != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: name, Table: model.TableName})
	}

	if location := strings.TrimSpace(query.Get(FormLocation)); location != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldLocation, Operator: gDto.FilterOperatorLike, Value: location, Table: model.TableName})
	}

	if kind := query.Get(FormKind); kind != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldKind, Operator: gDto.FilterOperatorEq, Value: kind, Table: model.TableName})
	}

	if active := shared.ConvertStringToBool(query.Get(FormIsActive)); active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: *active, Table: model.TableName})
	}

	return filter
}
