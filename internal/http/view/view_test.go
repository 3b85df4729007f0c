package view

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"clubapi/internal/model"
	"clubapi/internal/repository"
	"clubapi/internal/service"
	serviceMocks "clubapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestApp(svc service.MemberService) *fiber.App {
	app := fiber.New(fiber.Config{Views: NewEngine()})
	RegisterRoutes(app, svc)
	return app
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return string(b)
}

func postForm(app *fiber.App, path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := app.Test(req)
	return resp
}

func sampleMember() *model.Member {
	return &model.Member{
		ID:        7,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Gender:    model.GenderFemale,
		BirthDate: time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC),
		Country:   "GB",
		Consent:   true,
	}
}

func memberForm() url.Values {
	return url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"gender":     {"female"},
		"birth_date": {"1990-04-01"},
		"country":    {"GB"},
		"consent":    {"on"},
	}
}

func TestListPage(t *testing.T) {
	t.Run("renders the roster", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("List", mock.Anything, mock.Anything).
			Return(&service.MemberListResult{
				Items: []model.Member{*sampleMember()},
				Total: 1,
				Limit: pageSize,
			}, nil).Once()

		app := newTestApp(mockSvc)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "no-store, max-age=0", resp.Header.Get(fiber.HeaderCacheControl))
		body := bodyOf(t, resp)
		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, `href="/ui/members/7"`)
		assert.Contains(t, body, "1 member(s)")
		mockSvc.AssertExpectations(t)
	})

	t.Run("passes page, search and gender filter through", func(t *testing.T) {
		want := service.ListParams{
			Limit:  pageSize,
			Offset: pageSize,
			Filter: repository.MemberFilter{Search: "ada", Gender: model.GenderFemale},
			Order:  repository.Order{Field: "last_name", Direction: repository.ASC},
		}
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("List", mock.Anything, want).
			Return(&service.MemberListResult{Items: []model.Member{}, Total: 0, Limit: pageSize}, nil).Once()

		app := newTestApp(mockSvc)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members?page=2&q=ada&gender=female", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("shows an empty message when there are no members", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("List", mock.Anything, mock.Anything).
			Return(&service.MemberListResult{Items: []model.Member{}, Total: 0, Limit: pageSize}, nil).Once()

		app := newTestApp(mockSvc)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, bodyOf(t, resp), "No members found.")
	})
}

func TestDetailPage(t *testing.T) {
	t.Run("renders all fields", func(t *testing.T) {
		m := sampleMember()
		m.PhotoPath = "members/photos/a.png"

		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Get", mock.Anything, int64(7)).Return(m, nil).Once()

		app := newTestApp(mockSvc)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members/7", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := bodyOf(t, resp)
		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, "1990-04-01")
		assert.Contains(t, body, "GB")
		assert.Contains(t, body, "Female")
		assert.Contains(t, body, `href="/members/7/photo"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Get", mock.Anything, int64(9)).Return(nil, service.ErrNotFound).Once()

		app := newTestApp(mockSvc)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members/9", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		app := newTestApp(new(serviceMocks.MockMemberService))
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members/abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestNewMemberPage(t *testing.T) {
	app := newTestApp(new(serviceMocks.MockMemberService))
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members/new", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := bodyOf(t, resp)
	assert.Contains(t, body, "Add member")
	assert.Contains(t, body, `name="first_name"`)
	assert.Contains(t, body, `name="consent"`)
}

func TestCreateMemberForm(t *testing.T) {
	t.Run("redirects to the new member on success", func(t *testing.T) {
		in := service.MemberInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Gender:    "female",
			BirthDate: "1990-04-01",
			Country:   "GB",
			Consent:   true,
		}
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Create", mock.Anything, in).Return(sampleMember(), nil).Once()

		app := newTestApp(mockSvc)
		resp := postForm(app, "/ui/members/new", memberForm())

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/ui/members/7", resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("re-renders with message and submitted values on validation error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrFirstNameRequired).Once()

		form := memberForm()
		form.Set("first_name", "")

		app := newTestApp(mockSvc)
		resp := postForm(app, "/ui/members/new", form)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := bodyOf(t, resp)
		assert.Contains(t, body, "first name is required")
		assert.Contains(t, body, `value="Lovelace"`)
		mockSvc.AssertExpectations(t)
	})
}

func TestEditMemberPage(t *testing.T) {
	mockSvc := new(serviceMocks.MockMemberService)
	mockSvc.On("Get", mock.Anything, int64(7)).Return(sampleMember(), nil).Once()

	app := newTestApp(mockSvc)
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members/7/edit", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := bodyOf(t, resp)
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, `value="1990-04-01"`)
	assert.Contains(t, body, "checked")
	mockSvc.AssertExpectations(t)
}

func TestUpdateMemberForm(t *testing.T) {
	t.Run("redirects to detail on success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Update", mock.Anything, int64(7), mock.Anything).Return(sampleMember(), nil).Once()

		app := newTestApp(mockSvc)
		resp := postForm(app, "/ui/members/7/edit", memberForm())

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/ui/members/7", resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Update", mock.Anything, int64(9), mock.Anything).Return(nil, service.ErrNotFound).Once()

		app := newTestApp(mockSvc)
		resp := postForm(app, "/ui/members/9/edit", memberForm())

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("re-renders on validation error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Update", mock.Anything, int64(7), mock.Anything).Return(nil, model.ErrInvalidCountry).Once()

		form := memberForm()
		form.Set("country", "XX")

		app := newTestApp(mockSvc)
		resp := postForm(app, "/ui/members/7/edit", form)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := bodyOf(t, resp)
		assert.Contains(t, body, "invalid country code")
		assert.Contains(t, body, `value="XX"`)
	})
}

func TestDeleteMemberPage(t *testing.T) {
	mockSvc := new(serviceMocks.MockMemberService)
	mockSvc.On("Get", mock.Anything, int64(7)).Return(sampleMember(), nil).Once()

	app := newTestApp(mockSvc)
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members/7/delete", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := bodyOf(t, resp)
	assert.Contains(t, body, "Are you sure")
	assert.Contains(t, body, "Ada Lovelace")
	mockSvc.AssertExpectations(t)
}

func TestDeleteMemberForm(t *testing.T) {
	t.Run("deletes and returns to the list", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Delete", mock.Anything, int64(7)).Return(nil).Once()

		app := newTestApp(mockSvc)
		resp := postForm(app, "/ui/members/7/delete", url.Values{})

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/ui/members", resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockMemberService)
		mockSvc.On("Delete", mock.Anything, int64(9)).Return(service.ErrNotFound).Once()

		app := newTestApp(mockSvc)
		resp := postForm(app, "/ui/members/9/delete", url.Values{})

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestNewRouteIsNotShadowedByID(t *testing.T) {
	// /ui/members/new must hit the form handler, not the detail page
	app := newTestApp(new(serviceMocks.MockMemberService))
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ui/members/new", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
