package main

import "github.com/fyerfyer/fyer-queue/cmd/qcli/cmd"

func main() {
	cmd.Execute()
}
