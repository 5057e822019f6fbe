package validation

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mcpsquare/marketplace-api/internal/model"
	"github.com/mcpsquare/marketplace-api/internal/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the JSON field name so details map straight onto
	// the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateServiceRequest is the payload of POST /services and PUT /services/:id.
// Optional fields are pointers so absence is distinguishable from the zero
// value; ToService applies the documented defaults.
type CreateServiceRequest struct {
	// ID is optional; the catalog assigns one when absent.
	ID          *string  `json:"id" validate:"omitempty,uuid"`
	Title       string   `json:"title" validate:"required,max=200"`
	Summary     string   `json:"summary" validate:"required,max=1000"`
	Category    string   `json:"category" validate:"required,max=100"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required"`
	Pricing     *string  `json:"pricing" validate:"omitempty,max=200"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active draft archived"`
	ContactInfo *string  `json:"contactInfo" validate:"omitempty,max=500"`
}

// Normalize trims whitespace before the required/max checks run, so a
// blank-padded title neither passes required nor counts padding against max.
func (r *CreateServiceRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Category = strings.TrimSpace(r.Category)
	trimPtr(r.Pricing)
	trimPtr(r.Status)
	trimPtr(r.ContactInfo)
}

// Validate returns a field name to message mapping, empty on success.
func (r *CreateServiceRequest) Validate() map[string]string {
	r.Normalize()
	return translate(validate.Struct(r))
}

// ToService builds a service with defaults applied and tags normalized.
// Timestamps, and the id when absent, are left for the catalog layer.
func (r *CreateServiceRequest) ToService() *model.Service {
	svc := &model.Service{
		Title:       r.Title,
		Summary:     r.Summary,
		Category:    r.Category,
		Tags:        model.NormalizeTags(r.Tags),
		Pricing:     model.DefaultPricing,
		Status:      model.DefaultStatus,
		ContactInfo: "",
	}
	if r.Pricing != nil {
		svc.Pricing = *r.Pricing
	}
	if r.Status != nil {
		svc.Status = model.ServiceStatus(*r.Status)
	}
	if r.ContactInfo != nil {
		svc.ContactInfo = *r.ContactInfo
	}
	if r.ID != nil {
		// Already validated as a UUID; Parse cannot fail here.
		svc.ID = uuid.MustParse(*r.ID)
	}
	return svc
}

// UpdateServiceRequest is the payload of PATCH /services/:id. Every field is
// optional and no defaults are applied; absent fields stay untouched.
type UpdateServiceRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Summary     *string  `json:"summary" validate:"omitempty,min=1,max=1000"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required"`
	Pricing     *string  `json:"pricing" validate:"omitempty,max=200"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active draft archived"`
	ContactInfo *string  `json:"contactInfo" validate:"omitempty,max=500"`
}

func (r *UpdateServiceRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Summary)
	trimPtr(r.Category)
	trimPtr(r.Pricing)
	trimPtr(r.Status)
	trimPtr(r.ContactInfo)
}

func (r *UpdateServiceRequest) Validate() map[string]string {
	r.Normalize()
	return translate(validate.Struct(r))
}

// ToPatch converts the request into a repository patch.
func (r *UpdateServiceRequest) ToPatch() model.ServicePatch {
	patch := model.ServicePatch{
		Title:       r.Title,
		Summary:     r.Summary,
		Category:    r.Category,
		Tags:        r.Tags,
		Pricing:     r.Pricing,
		ContactInfo: r.ContactInfo,
	}
	if r.Status != nil {
		status := model.ServiceStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// ListQuery is the validated form of the list endpoint's query string.
type ListQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// ParseListQuery coerces and bounds page/limit and passes category/search
// through. Errors are reported per parameter, mirroring body validation.
func ParseListQuery(values url.Values) (ListQuery, map[string]string) {
	q := ListQuery{
		Page:     repository.DefaultPage,
		Limit:    repository.DefaultLimit,
		Category: values.Get("category"),
		Search:   values.Get("search"),
	}
	fieldErrors := make(map[string]string)

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrors["page"] = "page must be a number"
		case page < 1:
			fieldErrors["page"] = "page must be at least 1"
		default:
			q.Page = page
		}
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrors["limit"] = "limit must be a number"
		case limit < 1 || limit > repository.MaxLimit:
			fieldErrors["limit"] = "limit must be between 1 and 100"
		default:
			q.Limit = limit
		}
	}

	if len(fieldErrors) > 0 {
		return ListQuery{}, fieldErrors
	}
	return q, nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// translate flattens validator errors into the field→message mapping the
// error envelope carries as details.
func translate(err error) map[string]string {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": "invalid request body"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "id":
		return "Invalid service ID format"
	case "title":
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return "Title is required"
		}
		return "Title too long"
	case "summary":
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return "Summary is required"
		}
		return "Summary too long"
	case "category":
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return "Category is required"
		}
		return "Category too long"
	case "pricing":
		return "Pricing info too long"
	case "contactInfo":
		return "Contact info too long"
	case "status":
		return "Status must be one of: active, draft, archived"
	}
	// tags[i] entries fail the dive/required rule
	if strings.HasPrefix(fe.Field(), "tags") {
		if fe.Tag() == "max" {
			return "Too many tags"
		}
		return "Tag cannot be empty"
	}
	return "Invalid value"
}
