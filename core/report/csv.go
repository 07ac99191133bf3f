package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core/analytics"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/trainer"
)

func (svc *service) renderCSV(typ Type, snap *snapshot, w io.Writer) error {
	cw := csv.NewWriter(w)

	var err error
	switch typ {
	case TypeMembers:
		err = writeRows(cw, memberRows(snap.members))
	case TypeClasses:
		err = writeRows(cw, classRows(snap.classes))
	case TypeTrainers:
		err = writeRows(cw, trainerRows(snap.trainers))
	case TypeAnalytics:
		err = writeRows(cw, dashboardRows(snap.dashboard))
	case TypeFinancial:
		err = writeRows(cw, financialRows(snap.financial))
	case TypeComprehensive:
		// sections separated by a blank row
		sections := [][][]string{
			dashboardRows(snap.dashboard),
			{nil},
			memberRows(snap.members),
			{nil},
			classRows(snap.classes),
			{nil},
			trainerRows(snap.trainers),
			{nil},
			financialRows(snap.financial),
		}
		for _, section := range sections {
			if err = writeRows(cw, section); err != nil {
				break
			}
		}
	default:
		return ErrUnknownReport
	}
	if err != nil {
		return err
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

func writeRows(cw *csv.Writer, rows [][]string) error {
	for _, row := range rows {
		if row == nil {
			row = []string{""}
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	return nil
}

func memberRows(members []member.Member) [][]string {
	rows := [][]string{{
		"Name", "Email", "Phone", "Membership Type", "Status",
		"Start Date", "End Date", "Monthly Fee", "Progress %",
	}}
	for i := range members {
		mbr := &members[i]
		rows = append(rows, []string{
			mbr.Name,
			mbr.Email,
			mbr.Phone,
			mbr.MembershipType,
			mbr.Status,
			mbr.MembershipStartDate.String(),
			mbr.MembershipEndDate.String(),
			money(mbr.MonthlyFee),
			strconv.Itoa(mbr.ProgressPercentage()),
		})
	}
	return rows
}

func classRows(classes []class.Class) [][]string {
	rows := [][]string{{
		"Name", "Type", "Instructor", "Date", "Start", "End",
		"Room", "Enrolled", "Capacity", "Status", "Price",
	}}
	for i := range classes {
		cls := &classes[i]
		rows = append(rows, []string{
			cls.Name,
			cls.ClassType,
			cls.Instructor,
			cls.ClassDate.String(),
			cls.StartTime.String(),
			cls.EndTime.String(),
			cls.Room,
			strconv.Itoa(cls.CurrentEnrollment),
			strconv.Itoa(cls.MaxCapacity),
			cls.Status,
			money(cls.Price),
		})
	}
	return rows
}

func trainerRows(trainers []trainer.Trainer) [][]string {
	rows := [][]string{{
		"Name", "Employee ID", "Email", "Employment Type", "Status",
		"Experience (years)", "Rating", "Total Ratings", "Total Classes",
	}}
	for i := range trainers {
		trn := &trainers[i]
		rows = append(rows, []string{
			trn.Name,
			trn.EmployeeID,
			trn.Email,
			trn.EmploymentType,
			trn.Status,
			strconv.Itoa(trn.ExperienceYears),
			money(trn.Rating),
			strconv.Itoa(trn.TotalRatings),
			strconv.Itoa(trn.TotalClasses),
		})
	}
	return rows
}

func dashboardRows(dash analytics.Dashboard) [][]string {
	return [][]string{
		{"Metric", "Value"},
		{"Total Members", strconv.Itoa(dash.TotalMembers)},
		{"Active Members", strconv.Itoa(dash.ActiveMembers)},
		{"Premium Members", strconv.Itoa(dash.PremiumMembers)},
		{"VIP Members", strconv.Itoa(dash.VIPMembers)},
		{"Total Classes", strconv.Itoa(dash.TotalClasses)},
		{"Scheduled Classes", strconv.Itoa(dash.ScheduledClasses)},
		{"Completed Classes", strconv.Itoa(dash.CompletedClasses)},
		{"Cancelled Classes", strconv.Itoa(dash.CancelledClasses)},
		{"Total Trainers", strconv.Itoa(dash.TotalTrainers)},
		{"Active Trainers", strconv.Itoa(dash.ActiveTrainers)},
		{"Total Users", strconv.Itoa(dash.TotalUsers)},
		{"Active Users", strconv.Itoa(dash.ActiveUsers)},
		{"Monthly Revenue", money(dash.MonthlyRevenue)},
		{"Yearly Revenue", money(dash.YearlyRevenue)},
	}
}

func financialRows(fin analytics.FinancialAnalytics) [][]string {
	rows := [][]string{
		{"Metric", "Value"},
		{"Monthly Revenue", money(fin.MonthlyRevenue)},
		{"Yearly Revenue", money(fin.YearlyRevenue)},
		{"Projected Revenue", money(fin.ProjectedRevenue)},
		nil,
		{"Membership Type", "Revenue"},
	}
	for _, typ := range member.AllTypes {
		if revenue, ok := fin.RevenueByType[typ]; ok {
			rows = append(rows, []string{typ, money(revenue)})
		}
	}
	rows = append(rows, nil, []string{"Month", "Revenue", "Registrations"})
	for _, pt := range fin.MonthlyTrend {
		rows = append(rows, []string{pt.Month, money(pt.Revenue), strconv.Itoa(pt.Registrations)})
	}
	return rows
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
