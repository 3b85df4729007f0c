package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"clubapi/internal/model"
	"clubapi/internal/repository"
	"clubapi/internal/service"
)

// parseMemberID reads the :id route param as a positive integer.
func parseMemberID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseOrder understands "field" and "-field" (descending).
func parseOrder(s string) repository.Order {
	if strings.HasPrefix(s, "-") {
		return repository.Order{Field: strings.TrimPrefix(s, "-"), Direction: repository.DESC}
	}
	return repository.Order{Field: s, Direction: repository.ASC}
}

// validationCode maps a validation sentinel to its machine-readable error code.
func validationCode(err error) (string, bool) {
	switch {
	case errors.Is(err, model.ErrFirstNameRequired):
		return "FIRST_NAME_REQUIRED", true
	case errors.Is(err, model.ErrLastNameRequired):
		return "LAST_NAME_REQUIRED", true
	case errors.Is(err, model.ErrInvalidGender):
		return "INVALID_GENDER", true
	case errors.Is(err, model.ErrBirthDateRequired):
		return "BIRTH_DATE_REQUIRED", true
	case errors.Is(err, model.ErrBirthDateInFuture):
		return "BIRTH_DATE_IN_FUTURE", true
	case errors.Is(err, model.ErrInvalidCountry):
		return "INVALID_COUNTRY", true
	case errors.Is(err, service.ErrInvalidBirthDate):
		return "INVALID_BIRTH_DATE", true
	}
	return "", false
}

// writeMemberError translates service errors into the standard payload.
// Validation sentinels keep their safe message; everything else gets a generic one.
func writeMemberError(c *fiber.Ctx, err error) error {
	if code, ok := validationCode(err); ok {
		return writeError(c, fiber.StatusBadRequest, code, err.Error())
	}
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "member not found")
	case errors.Is(err, service.ErrPhotoNotFound):
		return writeError(c, fiber.StatusNotFound, "PHOTO_NOT_FOUND", "member has no photo")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ListMembers godoc
// @Summary List members
// @Description Lists members with pagination, filtering and ordering.
// @Tags members
// @Produce json
// @Param limit query int false "page size (default 10, max 100)"
// @Param offset query int false "page offset"
// @Param gender query string false "filter by gender (male|female|other)"
// @Param country query string false "filter by ISO 3166-1 alpha-2 country code"
// @Param search query string false "case-insensitive match on first or last name"
// @Param consent query bool false "only members who gave consent"
// @Param order query string false "order field, prefix with - for descending"
// @Success 200 {object} service.MemberListResult
// @Failure 400 {object} errorPayload
// @Router /members [get]
func ListMembers(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		params := service.ListParams{Limit: limit, Offset: offset}

		if g := c.Query("gender"); g != "" {
			gender, err := model.ParseGender(g)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_GENDER", "invalid gender")
			}
			params.Filter.Gender = gender
		}
		if country := c.Query("country"); country != "" {
			params.Filter.Country = model.NormalizeCountry(country)
		}
		params.Filter.Search = c.Query("search")
		if consent := c.Query("consent"); consent != "" {
			v, err := strconv.ParseBool(consent)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_CONSENT", "invalid consent")
			}
			params.Filter.ConsentOnly = v
		}
		if order := c.Query("order"); order != "" {
			params.Order = parseOrder(order)
		}

		res, err := svc.List(c.UserContext(), params)
		if err != nil {
			if errors.Is(err, service.ErrInvalidOrderField) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ORDER", "invalid order field")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// CreateMember godoc
// @Summary Create a member
// @Tags members
// @Accept json
// @Produce json
// @Param member body service.MemberInput true "member fields"
// @Success 201 {object} model.Member
// @Failure 400 {object} errorPayload
// @Router /members [post]
func CreateMember(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.MemberInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		m, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeMemberError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// GetMember godoc
// @Summary Get a member by ID
// @Tags members
// @Produce json
// @Param id path int true "member ID"
// @Success 200 {object} model.Member
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /members/{id} [get]
func GetMember(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseMemberID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeMemberError(c, err)
		}
		return c.JSON(m)
	}
}

// UpdateMember godoc
// @Summary Update a member
// @Description Full update of all member fields.
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "member ID"
// @Param member body service.MemberInput true "member fields"
// @Success 200 {object} model.Member
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /members/{id} [put]
func UpdateMember(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseMemberID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.MemberInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		m, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeMemberError(c, err)
		}
		return c.JSON(m)
	}
}

// DeleteMember godoc
// @Summary Delete a member
// @Description Removes the member row and its stored photo, if any.
// @Tags members
// @Param id path int true "member ID"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /members/{id} [delete]
func DeleteMember(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseMemberID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeMemberError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadMemberPhoto godoc
// @Summary Upload a member photo
// @Description Accepts multipart/form-data with field name "photo".
// @Tags members
// @Accept mpfd
// @Produce json
// @Param id path int true "member ID"
// @Param photo formData file true "photo file"
// @Success 201 {object} model.Member
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /members/{id}/photo [post]
func UploadMemberPhoto(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseMemberID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		fh, err := c.FormFile("photo")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "PHOTO_REQUIRED", "photo file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		m, err := svc.UploadPhoto(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeMemberError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// GetMemberPhoto godoc
// @Summary Download a member photo
// @Description Redirects to a time-limited presigned URL.
// @Tags members
// @Param id path int true "member ID"
// @Success 302
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /members/{id}/photo [get]
func GetMemberPhoto(svc service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseMemberID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		u, err := svc.PhotoURL(c.UserContext(), id, service.DefaultPhotoURLExpiry)
		if err != nil {
			return writeMemberError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}
