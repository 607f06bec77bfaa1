package main

import "github.com/funvibe/funscope/pkg/cli"

func main() {
	cli.Execute()
}
