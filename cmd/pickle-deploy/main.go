package main

import "github.com/pickletrack/pickle-deploy/cmd/pickle-deploy/cmd"

func main() {
	cmd.Execute()
}
