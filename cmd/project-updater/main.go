package main

import "project-updater/internal/cli"

func main() {
	cli.Execute()
}
