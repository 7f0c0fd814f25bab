package main

import "github.com/Dawn-MC/ServerSync/cmd"

func main() {
	cmd.Execute()
}
