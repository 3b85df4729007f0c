package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubapi/internal/model"
	"clubapi/internal/repository"
	"clubapi/internal/storage"
)

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("member not found")
	ErrPhotoNotFound     = errors.New("member has no photo")
	ErrReaderNil         = errors.New("reader is nil")
	ErrInvalidBirthDate  = errors.New("invalid birth date, want YYYY-MM-DD")
	ErrInvalidOrderField = errors.New("invalid order field")
)

// validationSentinels are the input errors whose message is safe to show users.
var validationSentinels = []error{
	model.ErrFirstNameRequired,
	model.ErrLastNameRequired,
	model.ErrInvalidGender,
	model.ErrBirthDateRequired,
	model.ErrBirthDateInFuture,
	model.ErrInvalidCountry,
	ErrInvalidBirthDate,
}

// IsValidationError reports whether err is one of the input validation sentinels.
func IsValidationError(err error) bool {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Page size bounds applied by List.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// DefaultPhotoURLExpiry bounds the lifetime of presigned photo download URLs.
const DefaultPhotoURLExpiry = 15 * time.Minute

// MemberInput carries the fields accepted when creating or updating a member,
// as they arrive from JSON bodies or HTML forms. BirthDate uses the
// YYYY-MM-DD layout; Country and Gender may arrive in any case.
type MemberInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
	Country   string `json:"country"`
	Consent   bool   `json:"consent"`
}

// ListParams bundles pagination, filtering and ordering for member lists.
type ListParams struct {
	Limit  int
	Offset int
	Filter repository.MemberFilter
	Order  repository.Order
}

// MemberListResult is the service-level DTO for paginated members.
type MemberListResult struct {
	Items  []model.Member `json:"data"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// MemberService defines the use cases for handling membership records.
type MemberService interface {
	// Create validates, normalizes and stores a new member.
	Create(ctx context.Context, in MemberInput) (*model.Member, error)

	// List returns members using the given pagination, filter and order.
	List(ctx context.Context, p ListParams) (*MemberListResult, error)

	// Get returns a single member by its ID.
	Get(ctx context.Context, id int64) (*model.Member, error)

	// Update rewrites an existing member from the full input set, preserving
	// its creation time and photo.
	Update(ctx context.Context, id int64, in MemberInput) (*model.Member, error)

	// Delete removes a member and, when present, its stored photo.
	Delete(ctx context.Context, id int64) error

	// UploadPhoto streams the content to object storage, records the key on
	// the member row, and rolls back the stored object if the DB update fails.
	// - originalFilename is used only to extract the extension; the stored key
	//   is members/photos/ + UUID + extension.
	UploadPhoto(ctx context.Context, id int64, r io.Reader, originalFilename string, contentType string, size int64) (*model.Member, error)

	// PhotoURL returns a presigned, time-limited download URL for the photo.
	PhotoURL(ctx context.Context, id int64, expiry time.Duration) (string, error)
}

// memberService is a concrete implementation of MemberService.
type memberService struct {
	store storage.Storage
	repo  repository.MemberRepository
}

// NewMemberService constructs a new MemberService.
func NewMemberService(store storage.Storage, repo repository.MemberRepository) MemberService {
	return &memberService{store: store, repo: repo}
}

// memberFromInput normalizes and validates form/JSON input into a Member.
// Validation errors are the model package's sentinels plus ErrInvalidBirthDate.
func memberFromInput(in MemberInput) (*model.Member, error) {
	m := &model.Member{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Country:   model.NormalizeCountry(in.Country),
		Consent:   in.Consent,
	}
	if in.Gender != "" {
		g, err := model.ParseGender(in.Gender)
		if err != nil {
			return nil, err
		}
		m.Gender = g
	}
	if in.BirthDate != "" {
		d, err := time.Parse(model.DateLayout, in.BirthDate)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		m.BirthDate = d
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *memberService) Create(ctx context.Context, in MemberInput) (*model.Member, error) {
	m, err := memberFromInput(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	stored, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return stored, nil
}

// List returns paginated members without exposing repository types beyond the filter.
func (s *memberService) List(ctx context.Context, p ListParams) (*MemberListResult, error) {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Order.Field != "" && !repository.IsMemberOrderField(p.Order.Field) {
		return nil, ErrInvalidOrderField
	}

	res, err := s.repo.List(ctx, p.Filter, p.Order, repository.PageQuery{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}
	return &MemberListResult{Items: res.Items, Total: res.Total, Limit: p.Limit, Offset: p.Offset}, nil
}

// Get returns a member by ID.
func (s *memberService) Get(ctx context.Context, id int64) (*model.Member, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Update validates the full input set and rewrites the member's mutable fields.
func (s *memberService) Update(ctx context.Context, id int64, in MemberInput) (*model.Member, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	m, err := memberFromInput(in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	m.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	return stored, nil
}

// Delete removes the member's photo from storage when present, then deletes the row.
func (s *memberService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep the DB row so the
	// storage reference is not lost.
	if m.HasPhoto() {
		if err := s.store.Delete(ctx, m.PhotoPath); err != nil {
			return fmt.Errorf("delete photo: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *memberService) UploadPhoto(ctx context.Context, id int64, r io.Reader, originalFilename string, contentType string, size int64) (*model.Member, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Generate the object key using UUID + original extension.
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("members", "photos", uuid.New().String()+ext))

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"member-id":         strconv.FormatInt(id, 10),
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.repo.UpdatePhotoPath(ctx, id, key); err != nil {
		// Rollback: delete the object from storage.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// Replacing a photo: the previous object is unreferenced once the new key
	// is recorded, so its removal is best-effort.
	if m.HasPhoto() && m.PhotoPath != key {
		_ = s.store.Delete(ctx, m.PhotoPath)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// PhotoURL presigns a download URL for the member's photo.
func (s *memberService) PhotoURL(ctx context.Context, id int64, expiry time.Duration) (string, error) {
	if id <= 0 {
		return "", ErrIDRequired
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if !m.HasPhoto() {
		return "", ErrPhotoNotFound
	}
	u, err := s.store.PresignGet(ctx, m.PhotoPath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign photo: %w", err)
	}
	return u, nil
}
