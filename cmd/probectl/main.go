package main

import "github.com/jsherman999/probe-go/internal/cli"

func main() {
	cli.Execute()
}
