package main

import (
	"dbfconv/cli"
)

func main() {
	cli.Start()
}
