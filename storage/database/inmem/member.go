package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/member"
)

type memberRepository struct {
	db *memberTable
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *DB) *memberRepository {
	return &memberRepository{db: db.member}
}

func (repo *memberRepository) query() []member.Member {
	members := make([]member.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		members = append(members, *m)
	}
	return members
}

func (repo *memberRepository) CheckMemberUniqueness(ctx context.Context, email, phone string, excludedMembers []member.Member, exec ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	excluded := make(map[string]bool, len(excludedMembers))
	for _, m := range excludedMembers {
		excluded[m.ID] = true
	}

	for _, mbr := range repo.query() {
		if excluded[mbr.ID] {
			continue
		}
		if (email != "" && mbr.Email == email) || (phone != "" && mbr.Phone == phone) {
			return member.ErrMemberExists
		}
	}
	return nil
}

func (repo *memberRepository) CreateMember(ctx context.Context, mbr member.Member, exec ...core.DBExecutor) (member.Member, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	mbr.ID = uuid.New().String()
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) QueryMembers(ctx context.Context, filter *member.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]member.Member, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	members := make([]member.Member, 0)
	for _, mbr := range repo.query() {
		if filter != nil && !matchMember(mbr, filter) {
			continue
		}
		members = append(members, mbr)
	}
	return members, nil
}

func matchMember(mbr member.Member, filter *member.QueryFilter) bool {
	if filter.Search != "" &&
		!containsFold(mbr.Name, filter.Search) &&
		!containsFold(mbr.Email, filter.Search) &&
		!containsFold(mbr.Phone, filter.Search) &&
		!containsFold(mbr.City, filter.Search) {
		return false
	}
	if len(filter.Statuses) > 0 && !inList(mbr.Status, filter.Statuses) {
		return false
	}
	if len(filter.MembershipTypes) > 0 && !inList(mbr.MembershipType, filter.MembershipTypes) {
		return false
	}
	if !filter.ExpiringBefore.IsZero() {
		if mbr.MembershipEndDate.IsZero() || !mbr.MembershipEndDate.Before(filter.ExpiringBefore) {
			return false
		}
	}
	return true
}

func (repo *memberRepository) GetMember(ctx context.Context, filter member.GetFilter, exec ...core.DBExecutor) (member.Member, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if filter.ID != "" {
		if mbr, ok := repo.db.table[filter.ID]; ok {
			return *mbr, nil
		}
		return member.Member{}, member.ErrNotFound
	}

	for _, mbr := range repo.query() {
		if filter.Email != "" && mbr.Email == filter.Email {
			return mbr, nil
		}
		if filter.Phone != "" && mbr.Phone == filter.Phone {
			return mbr, nil
		}
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) UpdateMember(ctx context.Context, mbr member.Member, exec ...core.DBExecutor) (member.Member, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[mbr.ID]; !ok {
		return member.Member{}, member.ErrNotFound
	}
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) DeleteMembersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}
