package main

import (
	"github.com/cmmoran/accessorgen/cmd"
)

func main() {
	cmd.Execute()
}
