package main

import "github.com/kat/huegraph/internal/cli"

func main() {
	cli.Execute()
}
