package main

import "github.com/beka-birhanu/maze-runner/cli"

func main() {
	cli.Execute()
}
