package user

import (
	"bytes"
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/sajidbaba1/fithub/core"
)

type fakeUserRepo struct {
	users map[string]User
}

func newFakeUserRepo(users ...User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]User, len(users))}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []User, exec ...core.DBExecutor) error {
	excluded := make(map[string]bool, len(excludedUsers))
	for _, u := range excludedUsers {
		excluded[u.ID] = true
	}
	for _, u := range r.users {
		if excluded[u.ID] {
			continue
		}
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return ErrUserExists
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error) {
	usr.ID = usr.Username
	r.users[usr.ID] = usr
	return usr, nil
}

func (r *fakeUserRepo) QueryUsers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]User, error) {
	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error) {
	if filter.ID != "" {
		if u, ok := r.users[filter.ID]; ok {
			return u, nil
		}
		return User{}, ErrNotFound
	}
	for _, u := range r.users {
		switch {
		case filter.Username != "":
			if u.Username == filter.Username {
				return u, nil
			}
		case filter.Email != "":
			if u.Email == filter.Email {
				return u, nil
			}
		case filter.UsernameOrEmail != nil:
			for _, v := range filter.UsernameOrEmail {
				if v != "" && (u.Username == v || u.Email == v) {
					return u, nil
				}
			}
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error) {
	if _, ok := r.users[usr.ID]; !ok {
		return User{}, ErrNotFound
	}
	r.users[usr.ID] = usr
	return usr, nil
}

func (r *fakeUserRepo) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	var cnt int
	for _, id := range ids {
		if _, ok := r.users[id]; ok {
			delete(r.users, id)
			cnt++
		}
	}
	return cnt, nil
}

var _ Repository = (*fakeUserRepo)(nil)

// nopMailService drops messages; password reset flows run their mailing in
// goroutines and the tests only assert on state.
type nopMailService struct{}

func (nopMailService) SendMessages(messages ...*core.EmailMessage) {}

func testConf() {
	core.Conf = &core.Config{
		AppName:          "FitHub",
		SecretKey:        []byte("t3st-s3cret"),
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "FitHub", Address: "noreply@test.test"},
		Server:           core.ServerConfig{PasswordResetTimeoutDelta: 3 * 24 * time.Hour},
	}
}

func TestServiceCreate(t *testing.T) {
	testConf()
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, nopMailService{})

	usr, err := svc.Create(ctx, NewUser{
		Name:     "Hero",
		Username: "hero",
		Email:    "hero@test.test",
		Password: "LolC@t123",
		Role:     RoleMember,
		Status:   StatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if usr.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if !usr.Active() {
		t.Error("new user is not active")
	}
	if err = usr.CheckPassword("LolC@t123"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err = usr.CheckPassword("lol"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestServiceCheckUniqueness(t *testing.T) {
	testConf()
	ctx := context.Background()
	hero := User{ID: "u1", Username: "hero", Email: "hero@test.test"}
	svc := NewService(newFakeUserRepo(hero), nopMailService{})

	if err := svc.CheckUniqueness(ctx, "newbie", "newbie@test.test"); err != nil {
		t.Errorf("CheckUniqueness() error = %v; want nil", err)
	}

	err := svc.CheckUniqueness(ctx, "hero", "other@test.test")
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("CheckUniqueness() error = %T; want *core.ValidationError", err)
	}
	fields := make(map[string]bool, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields[f.Field] = true
	}
	if !fields["username"] || !fields["email"] {
		t.Errorf("ValidationError fields = %v; want username and email", vErr.Fields)
	}

	// the user themselves is excluded on update
	if err := svc.CheckUniqueness(ctx, "hero", "hero@test.test", hero); err != nil {
		t.Errorf("CheckUniqueness() error = %v; want nil", err)
	}
}

func TestServiceGetByUsernameOrEmail(t *testing.T) {
	testConf()
	ctx := context.Background()
	hero := User{ID: "u1", Username: "hero", Email: "hero@test.test"}
	svc := NewService(newFakeUserRepo(hero), nopMailService{})

	for _, uname := range []string{"hero", "HERO", "hero@test.test", " Hero@Test.test "} {
		usr, err := svc.GetByUsernameOrEmail(ctx, uname)
		if err != nil {
			t.Errorf("GetByUsernameOrEmail(%q) error = %v", uname, err)
			continue
		}
		if usr.ID != hero.ID {
			t.Errorf("GetByUsernameOrEmail(%q) = %v; want %v", uname, usr.ID, hero.ID)
		}
	}

	if _, err := svc.GetByUsernameOrEmail(ctx, "lol"); err != ErrNotFound {
		t.Errorf("GetByUsernameOrEmail() error = %v; want ErrNotFound", err)
	}
}

func TestServiceResetPassword(t *testing.T) {
	testConf()
	ctx := context.Background()

	active := true
	hero := User{ID: "u1", Username: "hero", Email: "hero@test.test", IsActive: &active}
	if err := hero.SetPassword("old"); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	repo := newFakeUserRepo(hero)
	svc := NewService(repo, nopMailService{})

	token, err := MakeToken(hero)
	if err != nil {
		t.Fatalf("MakeToken(): %v", err)
	}

	tests := []struct {
		name    string
		rp      ResetUserPassword
		wantErr bool
	}{
		{name: "invalid uid", rp: ResetUserPassword{UID: "lol", Token: token, Password: "LolC@t123"}, wantErr: true},
		{name: "unknown user", rp: ResetUserPassword{UID: EncodeUID(User{ID: "u9"}), Token: token, Password: "LolC@t123"}, wantErr: true},
		{name: "invalid token", rp: ResetUserPassword{UID: EncodeUID(hero), Token: "HE4TS-sigsig-sig", Password: "LolC@t123"}, wantErr: true},
		{name: "valid token", rp: ResetUserPassword{UID: EncodeUID(hero), Token: token, Password: "LolC@t123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ResetPassword(ctx, tt.rp)
			if tt.wantErr {
				if _, ok := err.(*core.ValidationError); !ok {
					t.Errorf("ResetPassword() error = %T (%v); want *core.ValidationError", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResetPassword() error = %v", err)
			}
			refreshed := repo.users[hero.ID]
			if bytes.Equal(refreshed.PasswordHash, hero.PasswordHash) {
				t.Error("failed to update new password")
			}
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	testConf()
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, nopMailService{})

	usr, err := svc.Create(ctx, NewUser{
		Name:     "Hero",
		Username: "hero",
		Email:    "hero@test.test",
		Password: "LolC@t123",
		Role:     RoleAdmin,
		Status:   StatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// a name-only update keeps credentials, role and status intact
	uu := UpdateUser{Name: "Joanna"}
	if err = uu.Validate(ctx, usr, svc); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	updated, err := svc.Update(ctx, usr.ID, uu)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Joanna" {
		t.Errorf("name = %v; want Joanna", updated.Name)
	}
	if updated.Username != usr.Username || updated.Email != usr.Email {
		t.Errorf("username/email = %v/%v; want %v/%v", updated.Username, updated.Email, usr.Username, usr.Email)
	}
	if updated.Role != RoleAdmin {
		t.Errorf("role = %v; want %v", updated.Role, RoleAdmin)
	}
	if updated.Status != StatusActive {
		t.Errorf("status = %v; want %v", updated.Status, StatusActive)
	}
	if !updated.Active() {
		t.Error("user deactivated by a name-only update")
	}
	if err = updated.CheckPassword("LolC@t123"); err != nil {
		t.Errorf("CheckPassword() error = %v; password lost on a name-only update", err)
	}

	// an explicit password change replaces the hash
	uu = UpdateUser{Password: "N3w-LolC@t", PasswordConfirm: "N3w-LolC@t"}
	if err = uu.Validate(ctx, updated, svc); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	updated, err = svc.Update(ctx, usr.ID, uu)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err = updated.CheckPassword("N3w-LolC@t"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err = updated.CheckPassword("LolC@t123"); err == nil {
		t.Error("old password still verifies after a password change")
	}

	if _, err = svc.Update(ctx, "lol", UpdateUser{Name: "Nobody"}); err != ErrNotFound {
		t.Errorf("Update() error = %v; want ErrNotFound", err)
	}
}
