package dto

import (
	"mime/multipart"
	"net/http"
	"strings"

	"corpbooking/internal/domains/vehicle/model"
	"corpbooking/shared"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	gModel "corpbooking/shared/model"
	"corpbooking/shared/timezone"

	"github.com/google/uuid"
)

const (
	FormName        = "name"
	FormVehicleType = "vehicle_type"
	FormPlateNumber = "plate_number"
	FormBrand       = "brand"
	FormYear        = "year"
	FormIsActive    = "is_active"
	FormPhoto       = "photo"
)

var sortableFields = []string{model.FieldName, model.FieldVehicleType, model.FieldYear, model.FieldIsActive}

// CreateVehicleRequest accepts either a multipart photo or a base64 data url in PhotoData.
type CreateVehicleRequest struct {
	Name        string                `json:"name"         validate:"required,max=100"`
	VehicleType string                `json:"vehicle_type" validate:"required,max=50"`
	PlateNumber string                `json:"plate_number" validate:"required,max=20"`
	Brand       string                `json:"brand"        validate:"omitempty,max=50"`
	Year        *int                  `json:"year"         validate:"omitempty,min=1950,max=2100"`
	PhotoURL    string                `json:"photo_url"    validate:"omitempty,url"`
	PhotoData   string                `json:"photo"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=3"`
	Photo       *multipart.FileHeader `json:"-"            swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	PhotoFile   multipart.File        `json:"-"            swaggerignore:"true"`
}

func (c *CreateVehicleRequest) AttachFile(header *multipart.FileHeader, file multipart.File) {
	c.Photo, c.PhotoFile = header, file
}

func (c *CreateVehicleRequest) FromForm(r *http.Request) {
	c.Name = r.FormValue(FormName)
	c.VehicleType = r.FormValue(FormVehicleType)
	c.PlateNumber = r.FormValue(FormPlateNumber)
	c.Brand = r.FormValue(FormBrand)

	if year, err := shared.ConvertStringToInt(r.FormValue(FormYear)); err == nil {
		c.Year = &year
	}
}

func (c *CreateVehicleRequest) HasUpload() bool {
	return c.Photo != nil || c.PhotoData != ""
}

func (c *CreateVehicleRequest) ToModel(user, photoURL string) model.Vehicle {
	now := timezone.Now()

	if photoURL == "" {
		photoURL = c.PhotoURL
	}

	return model.Vehicle{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(c.Name),
		VehicleType: strings.TrimSpace(c.VehicleType),
		PlateNumber: normalizePlate(c.PlateNumber),
		Brand:       strings.TrimSpace(c.Brand),
		Year:        c.Year,
		PhotoURL:    photoURL,
		IsActive:    true,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: user,
			UpdatedBy: user,
		},
	}
}

type UpdateVehicleRequest struct {
	Name        string                `db:"name"         json:"name"         validate:"omitempty,max=100"`
	VehicleType string                `db:"vehicle_type" json:"vehicle_type" validate:"omitempty,max=50"`
	PlateNumber string                `db:"plate_number" json:"plate_number" validate:"omitempty,max=20"`
	Brand       string                `db:"brand"        json:"brand"        validate:"omitempty,max=50"`
	Year        *int                  `db:"year"         json:"year"         validate:"omitempty,min=1950,max=2100"`
	IsActive    *bool                 `db:"is_active"    json:"is_active"`
	PhotoData   string                `json:"photo"      validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=3"`
	Photo       *multipart.FileHeader `json:"-"          swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	PhotoFile   multipart.File        `json:"-"          swaggerignore:"true"`
}

func (u *UpdateVehicleRequest) AttachFile(header *multipart.FileHeader, file multipart.File) {
	u.Photo, u.PhotoFile = header, file
}

func (u *UpdateVehicleRequest) FromForm(r *http.Request) {
	u.Name = r.FormValue(FormName)
	u.VehicleType = r.FormValue(FormVehicleType)
	u.PlateNumber = normalizePlate(r.FormValue(FormPlateNumber))
	u.Brand = r.FormValue(FormBrand)
	u.IsActive = shared.ConvertStringToBool(r.FormValue(FormIsActive))

	if year, err := shared.ConvertStringToInt(r.FormValue(FormYear)); err == nil {
		u.Year = &year
	}
}

func (u *UpdateVehicleRequest) HasUpload() bool {
	return u.Photo != nil || u.PhotoData != ""
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}

type VehicleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VehicleType string `json:"vehicle_type"`
	PlateNumber string `json:"plate_number"`
	Brand       string `json:"brand"`
	Year        *int   `json:"year,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	IsActive    bool   `json:"is_active"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(model model.Vehicle) {
	r.ID = model.ID
	r.Name = model.Name
	r.VehicleType = model.VehicleType
	r.PlateNumber = model.PlateNumber
	r.Brand = model.Brand
	r.Year = model.Year
	r.PhotoURL = model.PhotoURL
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVehiclesResponse) FromModels(models []model.Vehicle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}

// ListParams orders active vehicles first and then by name unless the client picks a sortable field.
func ListParams(r *http.Request) gDto.QueryParams {
	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	if r.URL.Query().Get(constant.RequestParamSortBy) == "" {
		params.SortBy = model.FieldIsActive + " DESC, " + model.FieldName
		params.SortDir = gDto.SortDirAsc

		return params
	}

	params.RestrictSort(sortableFields, model.FieldName, gDto.SortDirAsc)

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

	if vehicleType := strings.TrimSpace(query.Get(FormVehicleType)); vehicleType != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldVehicleType, Operator: gDto.FilterOperatorEq, Value: vehicleType, Table: model.TableName})
	}

	if active := shared.ConvertStringToBool(query.Get(FormIsActive)); active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	return filter
}
