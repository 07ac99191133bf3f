package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

func (svc *service) renderXLSX(typ Type, snap *snapshot, w io.Writer) error {
	var sheets []struct {
		name string
		rows [][]string
	}
	addSheet := func(name string, rows [][]string) {
		sheets = append(sheets, struct {
			name string
			rows [][]string
		}{name, rows})
	}

	switch typ {
	case TypeMembers:
		addSheet("Members", memberRows(snap.members))
	case TypeClasses:
		addSheet("Classes", classRows(snap.classes))
	case TypeTrainers:
		addSheet("Trainers", trainerRows(snap.trainers))
	case TypeAnalytics:
		addSheet("Analytics", dashboardRows(snap.dashboard))
	case TypeFinancial:
		addSheet("Financial", financialRows(snap.financial))
	case TypeComprehensive:
		addSheet("Analytics", dashboardRows(snap.dashboard))
		addSheet("Members", memberRows(snap.members))
		addSheet("Classes", classRows(snap.classes))
		addSheet("Trainers", trainerRows(snap.trainers))
		addSheet("Financial", financialRows(snap.financial))
	default:
		return ErrUnknownReport
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return errors.Wrap(err, "renaming sheet")
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return errors.Wrapf(err, "adding sheet %s", sheet.name)
			}
		}
		if err := fillSheet(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	return errors.Wrap(f.Write(w), "writing workbook")
}

func fillSheet(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return errors.Wrap(err, "resolving cell name")
			}
			if err = f.SetCellValue(sheet, cell, value); err != nil {
				return errors.Wrapf(err, "setting cell %s!%s", sheet, cell)
			}
		}
	}
	return nil
}
