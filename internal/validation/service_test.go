package validation

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpsquare/marketplace-api/internal/model"
)

func strPtr(s string) *string { return &s }

func validCreateRequest() CreateServiceRequest {
	return CreateServiceRequest{
		Title:    "Image Recognition",
		Summary:  "Identify objects and scenes from images.",
		Category: "AI",
	}
}

func TestCreateRequestDefaults(t *testing.T) {
	req := validCreateRequest()
	require.Empty(t, req.Validate())

	svc := req.ToService()
	assert.Equal(t, model.StatusDraft, svc.Status)
	assert.Equal(t, "Free", svc.Pricing)
	assert.Equal(t, []string{}, svc.Tags)
	assert.Equal(t, "", svc.ContactInfo)
}

func TestCreateRequestRequiredFields(t *testing.T) {
	req := CreateServiceRequest{}
	fieldErrors := req.Validate()
	require.Len(t, fieldErrors, 3)
	assert.Equal(t, "Title is required", fieldErrors["title"])
	assert.Equal(t, "Summary is required", fieldErrors["summary"])
	assert.Equal(t, "Category is required", fieldErrors["category"])
}

func TestCreateRequestOptionalID(t *testing.T) {
	req := validCreateRequest()
	req.ID = strPtr("not-a-uuid")
	assert.Equal(t, "Invalid service ID format", req.Validate()["id"])

	req = validCreateRequest()
	req.ID = strPtr("6f1c2a4e-9b3d-4f6a-8c1e-2d5b7a9e0c11")
	require.Empty(t, req.Validate())
	assert.Equal(t, "6f1c2a4e-9b3d-4f6a-8c1e-2d5b7a9e0c11", req.ToService().ID.String())
}

func TestCreateRequestTrimsBeforeValidation(t *testing.T) {
	req := validCreateRequest()
	req.Title = "   "
	fieldErrors := req.Validate()
	assert.Equal(t, "Title is required", fieldErrors["title"])
}

func TestCreateRequestInvalidStatus(t *testing.T) {
	req := validCreateRequest()
	req.Status = strPtr("published")
	fieldErrors := req.Validate()
	require.Contains(t, fieldErrors, "status")
}

func TestCreateRequestStatusNotCoerced(t *testing.T) {
	for _, status := range []string{"active", "draft", "archived"} {
		req := validCreateRequest()
		req.Status = strPtr(status)
		require.Empty(t, req.Validate(), "status %q should validate", status)
		assert.Equal(t, model.ServiceStatus(status), req.ToService().Status)
	}
}

func TestCreateRequestFieldBounds(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	req := validCreateRequest()
	req.Title = long(201)
	assert.Equal(t, "Title too long", req.Validate()["title"])

	req = validCreateRequest()
	req.Summary = long(1001)
	assert.Equal(t, "Summary too long", req.Validate()["summary"])

	req = validCreateRequest()
	req.ContactInfo = strPtr(long(501))
	assert.Equal(t, "Contact info too long", req.Validate()["contactInfo"])
}

func TestCreateRequestBlankTag(t *testing.T) {
	req := validCreateRequest()
	req.Tags = []string{"ai", ""}
	fieldErrors := req.Validate()
	require.NotEmpty(t, fieldErrors)
	assert.Contains(t, fieldErrors, "tags[1]")
}

func TestCreateRequestTagsNormalized(t *testing.T) {
	req := validCreateRequest()
	req.Tags = []string{"ai", "vision", "ai", "  vision  "}
	require.Empty(t, req.Validate())
	assert.Equal(t, []string{"ai", "vision"}, req.ToService().Tags)
}

func TestUpdateRequestNoDefaults(t *testing.T) {
	req := UpdateServiceRequest{}
	require.Empty(t, req.Validate())

	patch := req.ToPatch()
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Pricing)
	assert.Nil(t, patch.Status)
	assert.Nil(t, patch.Tags)
}

func TestUpdateRequestInvalidStatus(t *testing.T) {
	req := UpdateServiceRequest{Status: strPtr("live")}
	fieldErrors := req.Validate()
	require.Contains(t, fieldErrors, "status")
}

func TestUpdateRequestStatusOnly(t *testing.T) {
	req := UpdateServiceRequest{Status: strPtr("active")}
	require.Empty(t, req.Validate())

	patch := req.ToPatch()
	require.NotNil(t, patch.Status)
	assert.Equal(t, model.StatusActive, *patch.Status)
	assert.Nil(t, patch.Title)
}

func TestParseListQueryDefaults(t *testing.T) {
	q, fieldErrors := ParseListQuery(url.Values{})
	require.Nil(t, fieldErrors)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Empty(t, q.Category)
	assert.Empty(t, q.Search)
}

func TestParseListQueryValues(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "25")
	values.Set("category", "AI")
	values.Set("search", "vision")

	q, fieldErrors := ParseListQuery(values)
	require.Nil(t, fieldErrors)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, "AI", q.Category)
	assert.Equal(t, "vision", q.Search)
}

func TestParseListQueryRejectsBadValues(t *testing.T) {
	cases := map[string]url.Values{
		"page":  {"page": {"abc"}},
		"limit": {"limit": {"0"}},
	}
	for field, values := range cases {
		_, fieldErrors := ParseListQuery(values)
		require.Contains(t, fieldErrors, field)
	}

	_, fieldErrors := ParseListQuery(url.Values{"limit": {"101"}})
	assert.Equal(t, "limit must be between 1 and 100", fieldErrors["limit"])

	_, fieldErrors = ParseListQuery(url.Values{"page": {"0"}})
	assert.Equal(t, "page must be at least 1", fieldErrors["page"])
}
