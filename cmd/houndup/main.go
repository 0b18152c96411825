package main

import "github.com/doubley612/bloodhound-automation/internal/cli"

func main() {
	cli.Execute()
}
