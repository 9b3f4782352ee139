package main

import "github.com/BruksfildServices01/fieldservice-availability/cmd/crmctl/cmd"

func main() {
	cmd.Execute()
}
