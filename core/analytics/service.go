package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/trainer"
	"github.com/sajidbaba1/fithub/core/user"
)

const topPerformersLimit = 10

// Snapshot sources. The domain services satisfy these structurally; tests
// plug in fakes.
type (
	MemberSource interface {
		Query(ctx context.Context, filter *member.QueryFilter, ordering ...core.DBOrdering) ([]member.Member, error)
	}
	TrainerSource interface {
		Query(ctx context.Context, filter *trainer.QueryFilter, ordering ...core.DBOrdering) ([]trainer.Trainer, error)
	}
	ClassSource interface {
		Query(ctx context.Context, filter *class.QueryFilter, ordering ...core.DBOrdering) ([]class.Class, error)
	}
	UserSource interface {
		Query(ctx context.Context, filter *user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error)
	}
)

type (
	Service interface {
		Dashboard(ctx context.Context) (Dashboard, error)
		Members(ctx context.Context) (MemberAnalytics, error)
		Classes(ctx context.Context) (ClassAnalytics, error)
		Trainers(ctx context.Context) (TrainerAnalytics, error)
		Financials(ctx context.Context) (FinancialAnalytics, error)
		// OverviewFor selects the slices the given role is entitled to see.
		// It is a convenience projection, not a security boundary; access
		// control lives in the API layer.
		OverviewFor(ctx context.Context, role string) (Overview, error)
	}

	service struct {
		members  MemberSource
		trainers TrainerSource
		classes  ClassSource
		users    UserSource
		sampler  Sampler
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(members MemberSource, trainers TrainerSource, classes ClassSource, users UserSource, sampler Sampler) *service {
	if sampler == nil {
		sampler = NewRandSampler()
	}
	return &service{
		members:  members,
		trainers: trainers,
		classes:  classes,
		users:    users,
		sampler:  sampler,
	}
}

func (svc *service) Dashboard(ctx context.Context) (Dashboard, error) {
	members, err := svc.members.Query(ctx, nil)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying members")
	}
	classes, err := svc.classes.Query(ctx, nil)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying classes")
	}
	trainers, err := svc.trainers.Query(ctx, nil)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying trainers")
	}
	users, err := svc.users.Query(ctx, nil)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying users")
	}

	dash := Dashboard{
		TotalMembers:  len(members),
		TotalClasses:  len(classes),
		TotalTrainers: len(trainers),
		TotalUsers:    len(users),
	}

	for i := range members {
		mbr := &members[i]
		if mbr.Active() {
			dash.ActiveMembers++
			dash.MonthlyRevenue += mbr.MonthlyFee
		}
		switch mbr.MembershipType {
		case member.TypePremium:
			dash.PremiumMembers++
		case member.TypeVIP:
			dash.VIPMembers++
		}
	}
	dash.MonthlyRevenue = core.Round2(dash.MonthlyRevenue)
	dash.YearlyRevenue = core.Round2(dash.MonthlyRevenue * 12)

	for i := range classes {
		switch classes[i].Status {
		case class.StatusScheduled:
			dash.ScheduledClasses++
		case class.StatusCompleted:
			dash.CompletedClasses++
		case class.StatusCancelled:
			dash.CancelledClasses++
		}
	}

	for i := range trainers {
		trn := &trainers[i]
		if trn.Active() {
			dash.ActiveTrainers++
		}
		switch trn.EmploymentType {
		case trainer.EmploymentFullTime:
			dash.FullTimeTrainers++
		case trainer.EmploymentPartTime:
			dash.PartTimeTrainers++
		}
	}

	for i := range users {
		if users[i].Active() {
			dash.ActiveUsers++
		}
	}

	return dash, nil
}

func (svc *service) Members(ctx context.Context) (MemberAnalytics, error) {
	members, err := svc.members.Query(ctx, nil)
	if err != nil {
		return MemberAnalytics{}, errors.Wrap(err, "querying members")
	}

	res := MemberAnalytics{
		MembershipTypes: make(map[string]int),
		Genders:         make(map[string]int),
		AgeGroups:       make(map[string]int),
	}

	var active []member.Member
	var progressSum int
	for i := range members {
		mbr := &members[i]
		res.MembershipTypes[mbr.MembershipType]++
		if mbr.Gender != "" {
			res.Genders[mbr.Gender]++
		}
		if !mbr.DateOfBirth.IsZero() {
			res.AgeGroups[AgeGroup(mbr.Age())]++
		}
		if mbr.Active() {
			active = append(active, *mbr)
			progressSum += mbr.ProgressPercentage()
		}
	}

	if len(active) > 0 {
		res.AverageProgress = core.Round2(float64(progressSum) / float64(len(active)))
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ProgressPercentage() > active[j].ProgressPercentage()
	})
	if len(active) > topPerformersLimit {
		active = active[:topPerformersLimit]
	}
	res.TopPerformers = active

	return res, nil
}

func (svc *service) Classes(ctx context.Context) (ClassAnalytics, error) {
	classes, err := svc.classes.Query(ctx, nil)
	if err != nil {
		return ClassAnalytics{}, errors.Wrap(err, "querying classes")
	}
	trainers, err := svc.trainers.Query(ctx, nil)
	if err != nil {
		return ClassAnalytics{}, errors.Wrap(err, "querying trainers")
	}

	res := ClassAnalytics{
		TypeCounts:         make(map[string]int),
		TypeUtilization:    make(map[string]float64),
		TimeSlots:          make(map[string]int),
		TrainerPerformance: make(map[string]float64),
	}

	utilSums := make(map[string]float64)
	for i := range classes {
		cls := &classes[i]
		res.TypeCounts[cls.ClassType]++
		utilSums[cls.ClassType] += cls.Utilization()
		res.TimeSlots[TimeSlot(cls.StartTime)]++
	}
	for typ, sum := range utilSums {
		res.TypeUtilization[typ] = core.Round2(sum / float64(res.TypeCounts[typ]))
	}

	for i := range trainers {
		if trainers[i].Active() {
			res.TrainerPerformance[trainers[i].Name] = trainers[i].Rating
		}
	}

	return res, nil
}

func (svc *service) Trainers(ctx context.Context) (TrainerAnalytics, error) {
	trainers, err := svc.trainers.Query(ctx, nil)
	if err != nil {
		return TrainerAnalytics{}, errors.Wrap(err, "querying trainers")
	}

	res := TrainerAnalytics{
		Specializations:  make(map[string]int),
		ExperienceGroups: make(map[string]int),
		EmploymentTypes:  make(map[string]int),
	}

	var ratingSum float64
	var ratedCount int
	for i := range trainers {
		trn := &trainers[i]
		for _, spec := range trn.Specializations {
			res.Specializations[spec]++
		}
		res.ExperienceGroups[ExperienceGroup(trn.ExperienceYears)]++
		res.EmploymentTypes[trn.EmploymentType]++
		if trn.TotalRatings > 0 {
			ratingSum += trn.Rating
			ratedCount++
		}
	}
	if ratedCount > 0 {
		res.AverageRating = core.Round2(ratingSum / float64(ratedCount))
	}

	return res, nil
}

func (svc *service) Financials(ctx context.Context) (FinancialAnalytics, error) {
	members, err := svc.members.Query(ctx, nil)
	if err != nil {
		return FinancialAnalytics{}, errors.Wrap(err, "querying members")
	}

	res := FinancialAnalytics{
		RevenueByType: make(map[string]float64),
	}

	for i := range members {
		mbr := &members[i]
		if !mbr.Active() {
			continue
		}
		res.MonthlyRevenue += mbr.MonthlyFee
		res.RevenueByType[mbr.MembershipType] += mbr.MonthlyFee
	}
	res.MonthlyRevenue = core.Round2(res.MonthlyRevenue)
	for typ, sum := range res.RevenueByType {
		res.RevenueByType[typ] = core.Round2(sum)
	}
	res.YearlyRevenue = core.Round2(res.MonthlyRevenue * 12)
	res.ProjectedRevenue = core.Round2(res.MonthlyRevenue * 1.15)

	res.MonthlyTrend = svc.monthlyTrend(res.MonthlyRevenue, len(members))

	return res, nil
}

// monthlyTrend synthesizes the trailing 12 months as values fluctuating
// around the current baseline.
func (svc *service) monthlyTrend(baseRevenue float64, totalMembers int) []MonthlyPoint {
	trend := make([]MonthlyPoint, 0, 12)
	now := time.Now()
	baseRegs := float64(totalMembers) / 12
	for i := 11; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		trend = append(trend, MonthlyPoint{
			Month:         month.Format("Jan 2006"),
			Revenue:       core.Round2(baseRevenue * (0.8 + svc.sampler.Sample()*0.4)),
			Registrations: int(baseRegs * (0.8 + svc.sampler.Sample()*0.4)),
		})
	}
	return trend
}

func (svc *service) OverviewFor(ctx context.Context, role string) (Overview, error) {
	var ov Overview

	withDashboard := func() error {
		dash, err := svc.Dashboard(ctx)
		if err != nil {
			return err
		}
		ov.Dashboard = &dash
		return nil
	}
	withMembers := func() error {
		ma, err := svc.Members(ctx)
		if err != nil {
			return err
		}
		ov.Members = &ma
		return nil
	}
	withClasses := func() error {
		ca, err := svc.Classes(ctx)
		if err != nil {
			return err
		}
		ov.Classes = &ca
		return nil
	}
	withTrainers := func() error {
		ta, err := svc.Trainers(ctx)
		if err != nil {
			return err
		}
		ov.Trainers = &ta
		return nil
	}
	withFinancial := func() error {
		fa, err := svc.Financials(ctx)
		if err != nil {
			return err
		}
		ov.Financial = &fa
		return nil
	}

	var parts []func() error
	switch role {
	case user.RoleOwner, user.RoleAdmin, user.RoleManager:
		parts = []func() error{withDashboard, withMembers, withClasses, withTrainers, withFinancial}
	case user.RoleReceptionist:
		parts = []func() error{withDashboard, withMembers, withClasses}
	case user.RoleTrainer:
		parts = []func() error{withClasses, withTrainers}
	default: // members and anonymous viewers see the public class slices only
		parts = []func() error{withClasses}
	}

	for _, part := range parts {
		if err := part(); err != nil {
			return Overview{}, err
		}
	}
	return ov, nil
}
