package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"student-console/internal/console"
	"student-console/internal/document"
	"student-console/internal/student"
	"student-console/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)

func TestConsole_Shared(t *testing.T) {
	store := testdb.SetupSQLite(t)

	// Create service ONCE and reuse across all subtests
	repo := student.NewRepository(store.DB)
	service := student.NewService(repo, testdb.DiscardLogger(), student.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	run := func(t *testing.T, stdin string, args ...string) (string, error) {
		t.Helper()
		var out bytes.Buffer
		c := console.New(service, testdb.DiscardLogger(),
			console.WithIO(strings.NewReader(stdin), &out),
			console.WithClock(func() time.Time { return now }),
		)
		err := c.Execute(ctx, args)
		return out.String(), err
	}

	t.Run("AddAndList", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		out, err := run(t, "", "next-id")
		require.NoError(t, err)
		assert.Equal(t, "STD-001\n", out)

		out, err = run(t, "", "add", "--name", "Asha Rao", "--father-name", "Rao Kumar", "--course", "B.Sc")
		require.NoError(t, err)
		assert.Equal(t, "Added STD-001 (id 1)\n", out)

		_, err = run(t, "", "add", "--name", "Vikram Das", "--gpa", "3.2")
		require.NoError(t, err)

		out, err = run(t, "", "list")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "Enrollment Date")
		assert.Contains(t, lines[1], "STD-002")
		assert.Contains(t, lines[1], "3.2")
		assert.Contains(t, lines[2], "STD-001")
		assert.Contains(t, lines[2], "2025-09-01 10:30:00")
	})

	t.Run("ListJSON", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "add", "--name", "Asha Rao")
		require.NoError(t, err)

		out, err := run(t, "", "list", "--json")
		require.NoError(t, err)

		var rows []student.Student
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "STD-001", rows[0].StudentID)
		assert.Nil(t, rows[0].GPA)
	})

	t.Run("AddValidationError", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "add", "--course", "B.Sc")
		assert.ErrorIs(t, err, student.ErrValidation)

		_, err = run(t, "", "add", "--name", "Asha", "--gpa", "excellent")
		assert.ErrorIs(t, err, student.ErrValidation)
	})

	t.Run("UpdateKeepsUnspecifiedFields", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "add", "--name", "Asha Rao", "--course", "B.Sc", "--gpa", "3.1")
		require.NoError(t, err)

		out, err := run(t, "", "update", "1", "--course", "M.Sc", "--gpa", "")
		require.NoError(t, err)
		assert.Equal(t, "Updated STD-001 (id 1)\n", out)

		got, err := service.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", got.Name)
		assert.Equal(t, "M.Sc", got.Course)
		assert.Nil(t, got.GPA)
		assert.Equal(t, "STD-001", got.StudentID)
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "update", "42", "--name", "Ghost")
		assert.ErrorIs(t, err, student.ErrStudentNotFound)

		_, err = run(t, "", "update", "abc", "--name", "Ghost")
		assert.ErrorIs(t, err, student.ErrValidation)
	})

	t.Run("DeleteAsksForConfirmation", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "add", "--name", "Asha Rao")
		require.NoError(t, err)

		out, err := run(t, "n\n", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Are you sure you want to delete the selected student? [y/N]")
		assert.Contains(t, out, "Cancelled")

		all, err := service.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		out, err = run(t, "yes\n", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted id 1")

		all, err = service.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("DeleteUnknownIDIsSilent", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		out, err := run(t, "", "delete", "--yes", "77")
		require.NoError(t, err)
		assert.Equal(t, "Deleted id 77\n", out)
	})

	t.Run("Show", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "add", "--name", "Asha Rao")
		require.NoError(t, err)

		out, err := run(t, "", "show", "STD-001", "--json")
		require.NoError(t, err)
		var s student.Student
		require.NoError(t, json.Unmarshal([]byte(out), &s))
		assert.Equal(t, "Asha Rao", s.Name)

		_, err = run(t, "", "show", "STD-404")
		assert.ErrorIs(t, err, student.ErrStudentNotFound)
	})

	t.Run("ReportCard", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "add", "--name", "Asha Rao", "--father-name", "Rao Kumar", "--course", "B.Sc")
		require.NoError(t, err)

		out, err := run(t, "", "report-card", "STD-001")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Report Card\n"))
		assert.Contains(t, out, "Asha Rao")
		assert.Contains(t, out, "Generated: 2025-09-01 10:30:00")
	})

	t.Run("CertificatesToFile", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "add", "--name", "Asha Rao", "--father-name", "Rao Kumar", "--course", "B.Sc", "--gpa", "3.7")
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "passing.txt")
		out, err := run(t, "", "passing-certificate", "STD-001", "--out", path)
		require.NoError(t, err)
		assert.Equal(t, "Passing Certificate for STD-001 written to "+path+"\n", out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, strings.Join(strings.Fields(string(data)), " "), "GPA of 3.7")
		assert.Contains(t, string(data), "Issued on: 2025-09-01")

		out, err = run(t, "", "character-certificate", "STD-001", "--json")
		require.NoError(t, err)
		var doc document.Document
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "Character Certificate", doc.Title)
		assert.Contains(t, doc.Body, "bearing Student ID STD-001")
	})

	t.Run("CertificateNotFound", func(t *testing.T) {
		testdb.CleanupTables(t, store.DB, "students")

		_, err := run(t, "", "character-certificate", "STD-009")
		assert.ErrorIs(t, err, student.ErrStudentNotFound)

		_, err = run(t, "", "passing-certificate", " ")
		assert.ErrorIs(t, err, student.ErrValidation)
	})

	t.Run("UnknownCommand", func(t *testing.T) {
		_, err := run(t, "", "enroll")
		assert.Error(t, err)
	})
}
