package main

import "github.com/confops/helpdesk-toolkit/cmd"

func main() {
	cmd.Execute()
}
