package main

import "cookbook-cleanup/internal/cli"

func main() {
	cli.Execute()
}
