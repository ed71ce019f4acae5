package main

import "github.com/dojoterm-dev/dojoterm/internal/cli"

func main() {
	cli.Execute()
}
