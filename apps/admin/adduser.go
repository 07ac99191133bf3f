package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd, role string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)
	if err := core.Validate.Var(role, "omitempty,role"); err != nil {
		return fmt.Errorf("invalid role %q", role)
	}
	if role == "" {
		role = user.RoleAdmin
	}

	now := time.Now().UTC()
	active := true
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{UsernameOrEmail: []string{uname, email}})
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Name:      uname,
			Username:  uname,
			Email:     email,
			CreatedAt: now,
		}
	}
	usr.Role = role
	usr.Status = user.StatusActive
	usr.IsActive = &active
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
