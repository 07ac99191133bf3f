package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/trainer"
	"github.com/sajidbaba1/fithub/core/user"
)

type (
	fakeMembers  []member.Member
	fakeTrainers []trainer.Trainer
	fakeClasses  []class.Class
	fakeUsers    []user.User
)

func (f fakeMembers) Query(ctx context.Context, filter *member.QueryFilter, ordering ...core.DBOrdering) ([]member.Member, error) {
	return f, nil
}

func (f fakeTrainers) Query(ctx context.Context, filter *trainer.QueryFilter, ordering ...core.DBOrdering) ([]trainer.Trainer, error) {
	return f, nil
}

func (f fakeClasses) Query(ctx context.Context, filter *class.QueryFilter, ordering ...core.DBOrdering) ([]class.Class, error) {
	return f, nil
}

func (f fakeUsers) Query(ctx context.Context, filter *user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error) {
	return f, nil
}

func testService(members fakeMembers, trainers fakeTrainers, classes fakeClasses, users fakeUsers) *service {
	return NewService(members, trainers, classes, users, FixedSampler(0.5))
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	active := true
	svc := testService(
		fakeMembers{
			{Status: member.StatusActive, MembershipType: member.TypePremium, MonthlyFee: 49.99},
			{Status: member.StatusActive, MembershipType: member.TypeVIP, MonthlyFee: 99.99},
			{Status: member.StatusExpired, MembershipType: member.TypeStandard, MonthlyFee: 29.99},
		},
		fakeTrainers{
			{Status: trainer.StatusActive, EmploymentType: trainer.EmploymentFullTime},
			{Status: trainer.StatusOnLeave, EmploymentType: trainer.EmploymentPartTime},
		},
		fakeClasses{
			{Status: class.StatusScheduled},
			{Status: class.StatusCompleted},
			{Status: class.StatusCancelled},
			{Status: class.StatusScheduled},
		},
		fakeUsers{
			{Status: user.StatusActive, IsActive: &active},
			{Status: user.StatusSuspended, IsActive: &active},
		},
	)

	dash, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if dash.TotalMembers != 3 || dash.ActiveMembers != 2 {
		t.Errorf("members = %d/%d, want 3/2", dash.TotalMembers, dash.ActiveMembers)
	}
	if dash.PremiumMembers != 1 || dash.VIPMembers != 1 {
		t.Errorf("premium/vip = %d/%d, want 1/1", dash.PremiumMembers, dash.VIPMembers)
	}
	if dash.ScheduledClasses != 2 || dash.CompletedClasses != 1 || dash.CancelledClasses != 1 {
		t.Errorf("class counts = %d/%d/%d, want 2/1/1", dash.ScheduledClasses, dash.CompletedClasses, dash.CancelledClasses)
	}
	if dash.ActiveTrainers != 1 || dash.FullTimeTrainers != 1 || dash.PartTimeTrainers != 1 {
		t.Errorf("trainer counts = %d/%d/%d, want 1/1/1", dash.ActiveTrainers, dash.FullTimeTrainers, dash.PartTimeTrainers)
	}
	if dash.ActiveUsers != 1 {
		t.Errorf("ActiveUsers = %d, want 1", dash.ActiveUsers)
	}

	// revenue counts active members only; the expired member's fee is excluded
	if dash.MonthlyRevenue != 149.98 {
		t.Errorf("MonthlyRevenue = %v, want 149.98", dash.MonthlyRevenue)
	}
	if dash.YearlyRevenue != 1799.76 {
		t.Errorf("YearlyRevenue = %v, want 1799.76", dash.YearlyRevenue)
	}
}

func TestMembers(t *testing.T) {
	ctx := context.Background()
	today := core.Today()
	dob := func(age int) core.Date { return core.NewDate(today.Year()-age, time.June, 15) }

	svc := testService(
		fakeMembers{
			{Status: member.StatusActive, MembershipType: member.TypeStandard, Gender: member.GenderFemale, DateOfBirth: dob(30), TotalSessions: 10, CompletedSessions: 8},
			{Status: member.StatusActive, MembershipType: member.TypePremium, Gender: member.GenderMale, DateOfBirth: dob(17), TotalSessions: 10, CompletedSessions: 2},
			{Status: member.StatusInactive, MembershipType: member.TypeStandard, Gender: member.GenderMale, DateOfBirth: dob(60), TotalSessions: 10, CompletedSessions: 10},
		},
		nil, nil, nil,
	)

	ma, err := svc.Members(ctx)
	if err != nil {
		t.Fatalf("Members() error = %v", err)
	}

	if ma.MembershipTypes[member.TypeStandard] != 2 || ma.MembershipTypes[member.TypePremium] != 1 {
		t.Errorf("MembershipTypes = %v", ma.MembershipTypes)
	}
	if ma.AgeGroups["25-34"] != 1 || ma.AgeGroups["<18"] != 1 || ma.AgeGroups["55+"] != 1 {
		t.Errorf("AgeGroups = %v", ma.AgeGroups)
	}
	if ma.Genders[member.GenderMale] != 2 || ma.Genders[member.GenderFemale] != 1 {
		t.Errorf("Genders = %v", ma.Genders)
	}

	// average progress over the two active members: (80 + 20) / 2 = 50
	if ma.AverageProgress != 50 {
		t.Errorf("AverageProgress = %v, want 50", ma.AverageProgress)
	}

	// inactive members never rank, even with perfect progress
	if len(ma.TopPerformers) != 2 {
		t.Fatalf("TopPerformers len = %d, want 2", len(ma.TopPerformers))
	}
	if ma.TopPerformers[0].ProgressPercentage() != 80 {
		t.Errorf("TopPerformers[0] progress = %d, want 80", ma.TopPerformers[0].ProgressPercentage())
	}
}

func TestClasses(t *testing.T) {
	ctx := context.Background()
	svc := testService(
		nil,
		fakeTrainers{
			{Name: "Jordan Reyes", Status: trainer.StatusActive, Rating: 4.5},
			{Name: "Sam Okafor", Status: trainer.StatusTerminated, Rating: 3.0},
		},
		fakeClasses{
			{ClassType: class.TypeYoga, StartTime: core.NewTimeOfDay(7, 0), MaxCapacity: 10, CurrentEnrollment: 10},
			{ClassType: class.TypeYoga, StartTime: core.NewTimeOfDay(18, 30), MaxCapacity: 10, CurrentEnrollment: 5},
			{ClassType: class.TypeBoxing, StartTime: core.NewTimeOfDay(21, 15), MaxCapacity: 20, CurrentEnrollment: 5},
		},
		nil,
	)

	ca, err := svc.Classes(ctx)
	if err != nil {
		t.Fatalf("Classes() error = %v", err)
	}

	if ca.TypeCounts[class.TypeYoga] != 2 || ca.TypeCounts[class.TypeBoxing] != 1 {
		t.Errorf("TypeCounts = %v", ca.TypeCounts)
	}
	if ca.TypeUtilization[class.TypeYoga] != 0.75 {
		t.Errorf("yoga utilization = %v, want 0.75", ca.TypeUtilization[class.TypeYoga])
	}
	if ca.TimeSlots["MORNING"] != 1 || ca.TimeSlots["EVENING"] != 1 || ca.TimeSlots["NIGHT"] != 1 {
		t.Errorf("TimeSlots = %v", ca.TimeSlots)
	}

	if _, ok := ca.TrainerPerformance["Sam Okafor"]; ok {
		t.Error("inactive trainer present in TrainerPerformance")
	}
	if ca.TrainerPerformance["Jordan Reyes"] != 4.5 {
		t.Errorf("TrainerPerformance = %v", ca.TrainerPerformance)
	}
}

func TestTrainers(t *testing.T) {
	ctx := context.Background()
	svc := testService(
		nil,
		fakeTrainers{
			{Specializations: []string{trainer.SpecYoga, trainer.SpecPilates}, ExperienceYears: 0, EmploymentType: trainer.EmploymentFullTime, Rating: 4.0, TotalRatings: 10},
			{Specializations: []string{trainer.SpecYoga}, ExperienceYears: 7, EmploymentType: trainer.EmploymentContract, Rating: 5.0, TotalRatings: 2},
			{Specializations: nil, ExperienceYears: 12, EmploymentType: trainer.EmploymentFullTime}, // never rated
		},
		nil, nil,
	)

	ta, err := svc.Trainers(ctx)
	if err != nil {
		t.Fatalf("Trainers() error = %v", err)
	}

	if ta.Specializations[trainer.SpecYoga] != 2 || ta.Specializations[trainer.SpecPilates] != 1 {
		t.Errorf("Specializations = %v", ta.Specializations)
	}
	if ta.ExperienceGroups["<1"] != 1 || ta.ExperienceGroups["5-9"] != 1 || ta.ExperienceGroups["10+"] != 1 {
		t.Errorf("ExperienceGroups = %v", ta.ExperienceGroups)
	}
	if ta.EmploymentTypes[trainer.EmploymentFullTime] != 2 {
		t.Errorf("EmploymentTypes = %v", ta.EmploymentTypes)
	}

	// unrated trainers are excluded from the mean: (4.0 + 5.0) / 2 = 4.5
	if ta.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", ta.AverageRating)
	}
}

func TestFinancials(t *testing.T) {
	ctx := context.Background()
	svc := testService(
		fakeMembers{
			{Status: member.StatusActive, MembershipType: member.TypeStandard, MonthlyFee: 30},
			{Status: member.StatusActive, MembershipType: member.TypeVIP, MonthlyFee: 100},
			{Status: member.StatusSuspended, MembershipType: member.TypeVIP, MonthlyFee: 100},
		},
		nil, nil, nil,
	)

	fa, err := svc.Financials(ctx)
	if err != nil {
		t.Fatalf("Financials() error = %v", err)
	}

	if fa.MonthlyRevenue != 130 {
		t.Errorf("MonthlyRevenue = %v, want 130", fa.MonthlyRevenue)
	}
	if fa.YearlyRevenue != 1560 {
		t.Errorf("YearlyRevenue = %v, want 1560", fa.YearlyRevenue)
	}
	if fa.ProjectedRevenue != 149.5 {
		t.Errorf("ProjectedRevenue = %v, want 149.5", fa.ProjectedRevenue)
	}
	if fa.RevenueByType[member.TypeVIP] != 100 || fa.RevenueByType[member.TypeStandard] != 30 {
		t.Errorf("RevenueByType = %v", fa.RevenueByType)
	}

	if len(fa.MonthlyTrend) != 12 {
		t.Fatalf("MonthlyTrend len = %d, want 12", len(fa.MonthlyTrend))
	}
	// the fixed midpoint sampler keeps trend values at the baseline
	for _, pt := range fa.MonthlyTrend {
		if pt.Revenue != 130 {
			t.Errorf("trend revenue = %v, want 130", pt.Revenue)
		}
	}
	if fa.MonthlyTrend[11].Month != time.Now().Format("Jan 2006") {
		t.Errorf("last trend month = %s, want %s", fa.MonthlyTrend[11].Month, time.Now().Format("Jan 2006"))
	}
}

func TestOverviewFor(t *testing.T) {
	ctx := context.Background()
	svc := testService(nil, nil, nil, nil)

	tests := []struct {
		role                                              string
		dashboard, members, classes, trainers, financials bool
	}{
		{role: user.RoleOwner, dashboard: true, members: true, classes: true, trainers: true, financials: true},
		{role: user.RoleAdmin, dashboard: true, members: true, classes: true, trainers: true, financials: true},
		{role: user.RoleManager, dashboard: true, members: true, classes: true, trainers: true, financials: true},
		{role: user.RoleReceptionist, dashboard: true, members: true, classes: true},
		{role: user.RoleTrainer, classes: true, trainers: true},
		{role: user.RoleMember, classes: true},
		{role: "", classes: true},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			ov, err := svc.OverviewFor(ctx, tt.role)
			if err != nil {
				t.Fatalf("OverviewFor(%q) error = %v", tt.role, err)
			}
			if got := ov.Dashboard != nil; got != tt.dashboard {
				t.Errorf("Dashboard present = %v, want %v", got, tt.dashboard)
			}
			if got := ov.Members != nil; got != tt.members {
				t.Errorf("Members present = %v, want %v", got, tt.members)
			}
			if got := ov.Classes != nil; got != tt.classes {
				t.Errorf("Classes present = %v, want %v", got, tt.classes)
			}
			if got := ov.Trainers != nil; got != tt.trainers {
				t.Errorf("Trainers present = %v, want %v", got, tt.trainers)
			}
			if got := ov.Financial != nil; got != tt.financials {
				t.Errorf("Financial present = %v, want %v", got, tt.financials)
			}
		})
	}
}
