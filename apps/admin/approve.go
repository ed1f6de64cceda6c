package main

import (
	"fmt"

	"github.com/pkg/errors"

	"edupro/core/user"
)

// approve activates a pending account by username.
func (cli *commandLine) approve(uname string) error {
	usr, err := cli.usrSvc.GetByUsername(uname)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return fmt.Errorf("no user with username %q", uname)
		}
		return err
	}
	if usr.IsActive() {
		fmt.Printf("user %q is already active\n", usr.Username)
		return nil
	}

	if _, err := cli.usrSvc.Approve(usr.ID); err != nil {
		return err
	}
	fmt.Printf("user %q approved\n", usr.Username)
	return nil
}
