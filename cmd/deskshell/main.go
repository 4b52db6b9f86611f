package main

import "github.com/Paintersrp/deskshell/internal/cli"

func main() {
	cli.Execute()
}
