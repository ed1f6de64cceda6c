package main

import (
	"errors"
	"flag"
	"fmt"

	"edupro/core/user"
	"edupro/storage/localdb"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *localdb.DB
	usrSvc user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed                                           - reset storage to the seed data set")
	fmt.Println("  adduser -username USERNAME -name NAME -role ROLE [-email EMAIL] [-class CLASS] - provision an active user")
	fmt.Println("  approve -username USERNAME                     - approve a pending user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserRole := addUserCmd.String("role", string(user.RoleStudent), "One of ADMIN, TEACHER, STUDENT.")
	addUserEmail := addUserCmd.String("email", "", "The user's email address (optional).")
	addUserClass := addUserCmd.String("class", "", "The user's class id (optional).")

	approveCmd := flag.NewFlagSet("approve", flag.ExitOnError)
	approveUname := approveCmd.String("username", "", "The pending user's username.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, *addUserName, *addUserRole, *addUserEmail, *addUserClass)
	case "approve":
		if err := approveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *approveUname == "" {
			approveCmd.Usage()
			return errHelp
		}
		return cli.approve(*approveUname)
	default:
		cli.printUsage()
		return errHelp
	}
}
