package main

import "github.com/rodrigoluft/rh-backoffice/cmd"

func main() {
	cmd.Execute()
}
