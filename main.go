package main

import (
	"os"
	"pinsc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
