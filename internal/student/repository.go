package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	GetAll(ctx context.Context) ([]Student, error)
	GetByID(ctx context.Context, id int64) (*Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*Student, error)
	MaxIDNumber(ctx context.Context) (int, error)
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id int64) error
}

// mutableColumns are the only columns an update writes. id, student_id and
// enrollment_date are set once by Create.
var mutableColumns = []string{
	"name", "father_name", "gender", "course", "dob", "father_phone",
	"student_phone", "address", "admission_date", "expell_date", "remarks", "gpa",
}

type repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	_, err := r.db.NewInsert().Model(student).Returning("id").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentifier, student.StudentID)
		}
		return nil, storeError("insert student", err)
	}
	return student, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Student, error) {
	students := make([]Student, 0)
	err := r.db.NewSelect().Model(&students).Order("id DESC").Scan(ctx)
	if err != nil {
		return nil, storeError("list students", err)
	}
	return students, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Student, error) {
	student := new(Student)
	err := r.db.NewSelect().Model(student).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, storeError("get student", err)
	}
	return student, nil
}

func (r *repository) GetByStudentID(ctx context.Context, studentID string) (*Student, error) {
	student := new(Student)
	err := r.db.NewSelect().
		Model(student).
		Where("student_id = ?", studentID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, storeError("find student", err)
	}
	return student, nil
}

// MaxIDNumber returns the largest numeric suffix after the STD- prefix, or
// 0 for an empty table.
func (r *repository) MaxIDNumber(ctx context.Context) (int, error) {
	var highest sql.NullInt64
	err := r.db.NewSelect().
		Model((*Student)(nil)).
		ColumnExpr("MAX(CAST(SUBSTR(student_id, ?) AS INTEGER))", len(IDPrefix)+1).
		Scan(ctx, &highest)
	if err != nil {
		return 0, storeError("scan student ids", err)
	}
	if !highest.Valid {
		return 0, nil
	}
	return int(highest.Int64), nil
}

// Update writes the mutable columns of the row with student.ID. A missing
// row is not an error.
func (r *repository) Update(ctx context.Context, student *Student) error {
	_, err := r.db.NewUpdate().
		Model(student).
		Column(mutableColumns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return storeError("update student", err)
	}
	return nil
}

// Delete removes the row with id. A missing row is not an error.
func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*Student)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return storeError("delete student", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}
