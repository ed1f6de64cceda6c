package main

import "fmt"

// seed restores the demo accounts and lessons, discarding everything else.
func (cli *commandLine) seed() error {
	if err := cli.db.ResetToSeed(); err != nil {
		return err
	}
	fmt.Println("storage reset to seed data")
	return nil
}
