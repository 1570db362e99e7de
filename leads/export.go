package leads

import (
	"context"
	"fmt"
	"io"

	"github.com/mmdatafocus/portal_backend/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Leads"

var exportHeadings = []string{"Lead ID", "Created At", "Status", "Name", "Email", "Phone", "Company", "Service", "Source", "Message", "Notes"}

func (s *Service) Export(ctx context.Context, filter models.LeadFilter, w io.Writer) error {
	leads, err := s.store.All(ctx, filter)
	if err != nil {
		return err
	}
	f, err := BuildWorkbook(leads)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// BuildWorkbook lays leads out one per row under a heading row.
func BuildWorkbook(leads []models.Lead) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	col := 'A'
	for _, h := range exportHeadings {
		f.SetCellValue(exportSheet, string(col)+"1", h)
		col++
	}

	for i, l := range leads {
		row := fmt.Sprint(i + 2)
		values := []interface{}{
			l.LeadId, l.CreatedAt.UTC().Format("2006-01-02 15:04:05"), string(l.Status),
			l.Name, l.Email, l.Phone, l.Company, l.Service, l.Source, l.Message, l.Notes,
		}
		col := 'A'
		for _, v := range values {
			if err := f.SetCellValue(exportSheet, string(col)+row, v); err != nil {
				return nil, err
			}
			col++
		}
	}
	return f, nil
}
