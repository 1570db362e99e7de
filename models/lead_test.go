package models

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/stretchr/testify/require"
)

func TestLeadList_FiltersByStatusNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `leads` WHERE status = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT \\* FROM `leads` WHERE status = \\? ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"lead_id", "name", "email", "status"}).
			AddRow("lead_b", "B", "b@example.com", "contacted"))

	st := LeadStatusContacted
	leads, total, err := repo.List(context.Background(), LeadFilter{Status: &st}, 2, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, leads, 1)
	require.Equal(t, LeadStatusContacted, leads[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadUpdate_UnknownIdIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectExec("UPDATE `leads` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `leads` WHERE lead_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"lead_id"}))

	notes := "called back"
	_, err := repo.Update(context.Background(), "lead_missing", LeadPatch{Notes: &notes})
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestParseLeadStatus(t *testing.T) {
	tests := []struct {
		in   string
		want LeadStatus
		ok   bool
	}{
		{"new", LeadStatusNew, true},
		{" Qualified ", LeadStatusQualified, true},
		{"CONVERTED", LeadStatusConverted, true},
		{"", "", false},
		{"archived", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLeadStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseLeadStatus(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
