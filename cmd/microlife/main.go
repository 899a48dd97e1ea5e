package main

import "microlife/internal/cli"

func main() {
	cli.Execute()
}
