package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// IDPrefix starts every external student identifier.
const IDPrefix = "STD-"

var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrValidation          = errors.New("invalid input")
	ErrDuplicateIdentifier = errors.New("student ID already exists")
	ErrStore               = errors.New("store failure")
)

// storeError keeps both ErrStore and the driver cause reachable through
// errors.Is/errors.As.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

type Service interface {
	NextIdentifier(ctx context.Context) (string, error)
	Create(ctx context.Context, studentID string, fields Fields) (*Student, error)
	Update(ctx context.Context, id int64, fields Fields) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Student, error)
	GetByID(ctx context.Context, id int64) (*Student, error)
	FindByStudentID(ctx context.Context, studentID string) (*Student, error)
	Lookup(ctx context.Context, studentID string) (*Student, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now as the source of enrollment timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(repo Repository, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		repo:     repo,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextIdentifier is recomputed on every call so that rows written by an
// earlier run of the program are taken into account.
func (s *service) NextIdentifier(ctx context.Context) (string, error) {
	highest, err := s.repo.MaxIDNumber(ctx)
	if err != nil {
		return "", err
	}
	return FormatIdentifier(highest + 1), nil
}

func FormatIdentifier(n int) string {
	return fmt.Sprintf("%s%03d", IDPrefix, n)
}

func (s *service) Create(ctx context.Context, studentID string, fields Fields) (*Student, error) {
	fields = fields.trimmed()
	if err := s.validate.Struct(fields); err != nil {
		return nil, validationError(err)
	}

	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		next, err := s.NextIdentifier(ctx)
		if err != nil {
			return nil, err
		}
		studentID = next
	} else if err := s.validate.Var(studentID, "student_id"); err != nil {
		return nil, validationError(err)
	}

	student := &Student{
		StudentID:      studentID,
		EnrollmentDate: s.now().Format(EnrollmentLayout),
	}
	fields.apply(student)

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "student created", "id", created.ID, "student_id", created.StudentID)
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, fields Fields) error {
	fields = fields.trimmed()
	if err := s.validate.Struct(fields); err != nil {
		return validationError(err)
	}

	student := &Student{ID: id}
	fields.apply(student)

	if err := s.repo.Update(ctx, student); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "student updated", "id", id)
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "student deleted", "id", id)
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]Student, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrValidation)
	}
	return s.repo.GetByID(ctx, id)
}

// FindByStudentID returns nil without an error when no row matches.
func (s *service) FindByStudentID(ctx context.Context, studentID string) (*Student, error) {
	student, err := s.repo.GetByStudentID(ctx, strings.TrimSpace(studentID))
	if errors.Is(err, ErrStudentNotFound) {
		return nil, nil
	}
	return student, err
}

// Lookup resolves the record a certificate is issued for. Unlike Update and
// Delete, an unknown identifier is reported as ErrStudentNotFound.
func (s *service) Lookup(ctx context.Context, studentID string) (*Student, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, fmt.Errorf("%w: enter a student ID first", ErrValidation)
	}

	student, err := s.repo.GetByStudentID(ctx, studentID)
	if errors.Is(err, ErrStudentNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, studentID)
	}
	return student, err
}
