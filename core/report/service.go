package report

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core/analytics"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/trainer"
)

type (
	// snapshot captures everything any report can need; each report reads the
	// slices relevant to it.
	snapshot struct {
		members   []member.Member
		classes   []class.Class
		trainers  []trainer.Trainer
		dashboard analytics.Dashboard
		financial analytics.FinancialAnalytics
	}

	Service interface {
		// Generate renders the requested report into w.
		Generate(ctx context.Context, typ Type, format Format, w io.Writer) error
	}

	service struct {
		members   analytics.MemberSource
		classes   analytics.ClassSource
		trainers  analytics.TrainerSource
		analytics analytics.Service
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(members analytics.MemberSource, classes analytics.ClassSource, trainers analytics.TrainerSource, analyticsSvc analytics.Service) *service {
	return &service{
		members:   members,
		classes:   classes,
		trainers:  trainers,
		analytics: analyticsSvc,
	}
}

func (svc *service) Generate(ctx context.Context, typ Type, format Format, w io.Writer) error {
	snap, err := svc.snapshot(ctx, typ)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return svc.renderCSV(typ, snap, w)
	case FormatXLSX:
		return svc.renderXLSX(typ, snap, w)
	case FormatHTML:
		return svc.renderHTML(typ, snap, w)
	default:
		return ErrUnknownReport
	}
}

func (svc *service) snapshot(ctx context.Context, typ Type) (*snapshot, error) {
	snap := new(snapshot)
	var err error

	all := typ == TypeComprehensive
	if all || typ == TypeMembers {
		if snap.members, err = svc.members.Query(ctx, nil); err != nil {
			return nil, errors.Wrap(err, "querying members")
		}
	}
	if all || typ == TypeClasses {
		if snap.classes, err = svc.classes.Query(ctx, nil); err != nil {
			return nil, errors.Wrap(err, "querying classes")
		}
	}
	if all || typ == TypeTrainers {
		if snap.trainers, err = svc.trainers.Query(ctx, nil); err != nil {
			return nil, errors.Wrap(err, "querying trainers")
		}
	}
	if all || typ == TypeAnalytics {
		if snap.dashboard, err = svc.analytics.Dashboard(ctx); err != nil {
			return nil, errors.Wrap(err, "building dashboard")
		}
	}
	if all || typ == TypeFinancial {
		if snap.financial, err = svc.analytics.Financials(ctx); err != nil {
			return nil, errors.Wrap(err, "building financials")
		}
	}
	return snap, nil
}
