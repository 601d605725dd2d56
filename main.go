package main

import (
	"github.com/nais/projectsync/cmd"
)

func main() {
	cmd.Execute()
}
