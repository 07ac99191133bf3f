package member

import (
	"context"
	"testing"

	"github.com/sajidbaba1/fithub/core"
)

// fakeRepo keeps members in a map; QueryMembers applies only the filter
// fields the service methods under test actually use.
type fakeRepo struct {
	members    map[string]Member
	lastFilter *QueryFilter
}

func newFakeRepo(members ...Member) *fakeRepo {
	repo := &fakeRepo{members: make(map[string]Member, len(members))}
	for _, m := range members {
		repo.members[m.ID] = m
	}
	return repo
}

func (r *fakeRepo) CheckMemberUniqueness(ctx context.Context, email, phone string, excludedMembers []Member, exec ...core.DBExecutor) error {
	excluded := make(map[string]bool, len(excludedMembers))
	for _, m := range excludedMembers {
		excluded[m.ID] = true
	}
	for _, m := range r.members {
		if excluded[m.ID] {
			continue
		}
		if (email != "" && m.Email == email) || (phone != "" && m.Phone == phone) {
			return ErrMemberExists
		}
	}
	return nil
}

func (r *fakeRepo) CreateMember(ctx context.Context, mbr Member, exec ...core.DBExecutor) (Member, error) {
	mbr.ID = mbr.Email
	r.members[mbr.ID] = mbr
	return mbr, nil
}

func (r *fakeRepo) QueryMembers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Member, error) {
	r.lastFilter = filter
	members := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		if filter != nil {
			if len(filter.Statuses) > 0 && !statusIn(m.Status, filter.Statuses) {
				continue
			}
			if !filter.ExpiringBefore.IsZero() &&
				(m.MembershipEndDate.IsZero() || !m.MembershipEndDate.Before(filter.ExpiringBefore)) {
				continue
			}
		}
		members = append(members, m)
	}
	return members, nil
}

func statusIn(status string, statuses []string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (r *fakeRepo) GetMember(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Member, error) {
	if filter.ID != "" {
		if m, ok := r.members[filter.ID]; ok {
			return m, nil
		}
		return Member{}, ErrNotFound
	}
	for _, m := range r.members {
		if filter.Email != "" && m.Email == filter.Email {
			return m, nil
		}
	}
	return Member{}, ErrNotFound
}

func (r *fakeRepo) UpdateMember(ctx context.Context, mbr Member, exec ...core.DBExecutor) (Member, error) {
	if _, ok := r.members[mbr.ID]; !ok {
		return Member{}, ErrNotFound
	}
	r.members[mbr.ID] = mbr
	return mbr, nil
}

func (r *fakeRepo) DeleteMembersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	var cnt int
	for _, id := range ids {
		if _, ok := r.members[id]; ok {
			delete(r.members, id)
			cnt++
		}
	}
	return cnt, nil
}

var _ Repository = (*fakeRepo)(nil)

func TestCompleteSession(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(Member{ID: "m1", Name: "Jo", Status: StatusActive, TotalSessions: 2, CompletedSessions: 1})
	svc := NewService(repo)

	mbr, err := svc.CompleteSession(ctx, "m1")
	if err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}
	if mbr.CompletedSessions != 2 {
		t.Errorf("CompletedSessions = %d; want 2", mbr.CompletedSessions)
	}

	// clamped at the purchased total
	mbr, err = svc.CompleteSession(ctx, "m1")
	if err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}
	if mbr.CompletedSessions != 2 {
		t.Errorf("CompletedSessions = %d; want 2 (clamped)", mbr.CompletedSessions)
	}

	if _, err = svc.CompleteSession(ctx, "lol"); err != ErrNotFound {
		t.Errorf("CompleteSession() error = %v; want ErrNotFound", err)
	}
}

func TestRefreshStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(
		Member{ID: "expired", Status: StatusActive, MembershipEndDate: core.Today().AddDays(-1)},
		Member{ID: "current", Status: StatusActive, MembershipEndDate: core.Today().AddDays(30)},
		Member{ID: "openended", Status: StatusActive},
	)
	svc := NewService(repo)

	tests := []struct {
		name       string
		id         string
		wantStatus string
	}{
		{name: "past end date flips to expired", id: "expired", wantStatus: StatusExpired},
		{name: "future end date stays active", id: "current", wantStatus: StatusActive},
		{name: "no end date stays active", id: "openended", wantStatus: StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mbr, err := svc.RefreshStatus(ctx, tt.id)
			if err != nil {
				t.Fatalf("RefreshStatus() error = %v", err)
			}
			if mbr.Status != tt.wantStatus {
				t.Errorf("status = %v; want %v", mbr.Status, tt.wantStatus)
			}
		})
	}
}

func TestExpiringWithin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(
		Member{ID: "soon", Status: StatusActive, MembershipEndDate: core.Today().AddDays(5)},
		Member{ID: "later", Status: StatusActive, MembershipEndDate: core.Today().AddDays(90)},
		Member{ID: "inactive", Status: StatusInactive, MembershipEndDate: core.Today().AddDays(5)},
	)
	svc := NewService(repo)

	members, err := svc.ExpiringWithin(ctx, 30)
	if err != nil {
		t.Fatalf("ExpiringWithin() error = %v", err)
	}
	if len(members) != 1 || members[0].ID != "soon" {
		t.Errorf("ExpiringWithin() = %v; want [soon]", members)
	}
	if got := repo.lastFilter.ExpiringBefore; !got.Equal(core.Today().AddDays(30)) {
		t.Errorf("ExpiringBefore = %v; want %v", got, core.Today().AddDays(30))
	}
}

func TestDeactivateExpired(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(
		Member{ID: "e1", Status: StatusActive, MembershipEndDate: core.Today().AddDays(-1)},
		Member{ID: "e2", Status: StatusActive, MembershipEndDate: core.Today().AddDays(-30)},
		Member{ID: "ok", Status: StatusActive, MembershipEndDate: core.Today().AddDays(30)},
		Member{ID: "open", Status: StatusActive},
	)
	svc := NewService(repo)

	cnt, err := svc.DeactivateExpired(ctx)
	if err != nil {
		t.Fatalf("DeactivateExpired() error = %v", err)
	}
	if cnt != 2 {
		t.Errorf("DeactivateExpired() = %d; want 2", cnt)
	}
	for _, id := range []string{"e1", "e2"} {
		if repo.members[id].Status != StatusExpired {
			t.Errorf("member %s status = %v; want %v", id, repo.members[id].Status, StatusExpired)
		}
	}
	for _, id := range []string{"ok", "open"} {
		if repo.members[id].Status != StatusActive {
			t.Errorf("member %s status = %v; want %v", id, repo.members[id].Status, StatusActive)
		}
	}
}
