package main

import (
	"fmt"
	"strings"

	"edupro/core/user"
)

// addUser provisions an Active account, bypassing the approval pipeline.
func (cli *commandLine) addUser(uname, name, role, email, classID string) error {
	r := user.Role(strings.ToUpper(role))
	if !r.Valid() {
		return fmt.Errorf("invalid role %q; must be one of ADMIN, TEACHER, STUDENT", role)
	}

	usr, err := cli.usrSvc.Provision(user.ProvisionUser{
		Username: uname,
		FullName: name,
		Role:     r,
		Email:    email,
		ClassID:  classID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("user %q (%s) created with id %s\n", usr.Username, usr.Role, usr.ID)
	return nil
}
