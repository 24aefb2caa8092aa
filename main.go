package main

import (
	"github.com/jjtimmons/contigs/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
