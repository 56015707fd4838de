package main

import "github.com/youmna-rabie/eventease/internal/cli"

func main() {
	cli.Execute()
}
