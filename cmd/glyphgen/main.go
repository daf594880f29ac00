package main

import "github.com/glyphgen/glyphgen/cmd/glyphgen/cli"

func main() {
	cli.Execute()
}
