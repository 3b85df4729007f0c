package view

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"clubapi/internal/http/middleware"
	"clubapi/internal/model"
	"clubapi/internal/repository"
	"clubapi/internal/service"
)

// pageSize is the number of members shown per roster page.
const pageSize = 10

// RegisterRoutes attaches the server-rendered member pages under /ui.
// The /new routes must be registered before /:id so they are not shadowed.
func RegisterRoutes(app *fiber.App, svc service.MemberService) {
	ui := app.Group("/ui", middleware.NoCache())
	ui.Get("/members", ListPage(svc))
	ui.Get("/members/new", NewMemberPage())
	ui.Post("/members/new", CreateMemberForm(svc))
	ui.Get("/members/:id", DetailPage(svc))
	ui.Get("/members/:id/edit", EditMemberPage(svc))
	ui.Post("/members/:id/edit", UpdateMemberForm(svc))
	ui.Get("/members/:id/delete", DeleteMemberPage(svc))
	ui.Post("/members/:id/delete", DeleteMemberForm(svc))
}

type genderOption struct {
	Value    string
	Label    string
	Selected bool
}

func genderOptions(selected string) []genderOption {
	all := model.Genders()
	opts := make([]genderOption, 0, len(all))
	for _, g := range all {
		opts = append(opts, genderOption{
			Value:    g.String(),
			Label:    g.Label(),
			Selected: g.String() == selected,
		})
	}
	return opts
}

// memberRow is a display-ready roster line.
type memberRow struct {
	ID        int64
	FullName  string
	Gender    string
	BirthDate string
	Country   string
	Consent   bool
}

func newMemberRow(m model.Member) memberRow {
	return memberRow{
		ID:        m.ID,
		FullName:  m.FullName(),
		Gender:    m.Gender.Label(),
		BirthDate: m.BirthDate.Format(model.DateLayout),
		Country:   m.Country,
		Consent:   m.Consent,
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formInput collects the submitted member fields. The consent checkbox is
// simply present or absent.
func formInput(c *fiber.Ctx) service.MemberInput {
	return service.MemberInput{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Gender:    c.FormValue("gender"),
		BirthDate: c.FormValue("birth_date"),
		Country:   c.FormValue("country"),
		Consent:   c.FormValue("consent") != "",
	}
}

// memberInput prefills form fields from a stored member.
func memberInput(m *model.Member) service.MemberInput {
	return service.MemberInput{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Gender:    m.Gender.String(),
		BirthDate: m.BirthDate.Format(model.DateLayout),
		Country:   m.Country,
		Consent:   m.Consent,
	}
}

func renderForm(c *fiber.Ctx, title, action, submit, errMsg string, in service.MemberInput) error {
	return c.Render("members/form", fiber.Map{
		"Title":   title,
		"Action":  action,
		"Submit":  submit,
		"Error":   errMsg,
		"Input":   in,
		"Genders": genderOptions(in.Gender),
	}, "layouts/base")
}

// ListPage renders the paginated member roster with search and gender filter.
func ListPage(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		q := c.Query("q")
		genderParam := c.Query("gender")

		params := service.ListParams{
			Limit:  pageSize,
			Offset: (page - 1) * pageSize,
			Order:  repository.Order{Field: "last_name", Direction: repository.ASC},
		}
		params.Filter.Search = q
		if genderParam != "" {
			g, err := model.ParseGender(genderParam)
			if err != nil {
				genderParam = ""
			} else {
				params.Filter.Gender = g
			}
		}

		res, err := svc.List(c.UserContext(), params)
		if err != nil {
			return fiber.ErrInternalServerError
		}

		rows := make([]memberRow, 0, len(res.Items))
		for _, m := range res.Items {
			rows = append(rows, newMemberRow(m))
		}

		totalPages := (res.Total + pageSize - 1) / pageSize
		if totalPages < 1 {
			totalPages = 1
		}

		return c.Render("members/list", fiber.Map{
			"Title":      "Members",
			"Members":    rows,
			"Total":      res.Total,
			"Page":       page,
			"TotalPages": totalPages,
			"HasPrev":    page > 1,
			"HasNext":    page < totalPages,
			"PrevPage":   page - 1,
			"NextPage":   page + 1,
			"Query":      q,
			"Gender":     genderParam,
			"Genders":    genderOptions(genderParam),
		}, "layouts/base")
	}
}

// DetailPage renders a single member with all fields and actions.
func DetailPage(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("invalid member id")
		}

		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).SendString("member not found")
			}
			return fiber.ErrInternalServerError
		}

		return c.Render("members/detail", fiber.Map{
			"Title":     m.FullName(),
			"Member":    m,
			"Age":       m.Age(time.Now()),
			"BirthDate": m.BirthDate.Format(model.DateLayout),
			"Gender":    m.Gender.Label(),
		}, "layouts/base")
	}
}

// NewMemberPage renders an empty create form.
func NewMemberPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderForm(c, "Add member", "/ui/members/new", "Create", "", service.MemberInput{})
	}
}

// CreateMemberForm handles the create form submission. Validation errors
// re-render the form with the submitted values and a message.
func CreateMemberForm(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := formInput(c)

		m, err := svc.Create(c.UserContext(), in)
		if err != nil {
			if service.IsValidationError(err) {
				return renderForm(c, "Add member", "/ui/members/new", "Create", err.Error(), in)
			}
			return fiber.ErrInternalServerError
		}
		return c.Redirect(fmt.Sprintf("/ui/members/%d", m.ID))
	}
}

// EditMemberPage renders the update form prefilled with the stored values.
func EditMemberPage(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("invalid member id")
		}

		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).SendString("member not found")
			}
			return fiber.ErrInternalServerError
		}

		action := fmt.Sprintf("/ui/members/%d/edit", id)
		return renderForm(c, "Edit "+m.FullName(), action, "Save", "", memberInput(m))
	}
}

// UpdateMemberForm handles the update form submission.
func UpdateMemberForm(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("invalid member id")
		}

		in := formInput(c)

		m, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			switch {
			case service.IsValidationError(err):
				action := fmt.Sprintf("/ui/members/%d/edit", id)
				return renderForm(c, "Edit member", action, "Save", err.Error(), in)
			case errors.Is(err, service.ErrNotFound):
				return c.Status(fiber.StatusNotFound).SendString("member not found")
			}
			return fiber.ErrInternalServerError
		}
		return c.Redirect(fmt.Sprintf("/ui/members/%d", m.ID))
	}
}

// DeleteMemberPage renders the delete confirmation.
func DeleteMemberPage(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("invalid member id")
		}

		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).SendString("member not found")
			}
			return fiber.ErrInternalServerError
		}

		return c.Render("members/confirm_delete", fiber.Map{
			"Title":  "Delete " + m.FullName(),
			"Member": m,
			"Action": fmt.Sprintf("/ui/members/%d/delete", id),
		}, "layouts/base")
	}
}

// DeleteMemberForm deletes the member after confirmation and returns to the list.
func DeleteMemberForm(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("invalid member id")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).SendString("member not found")
			}
			return fiber.ErrInternalServerError
		}
		return c.Redirect("/ui/members")
	}
}
