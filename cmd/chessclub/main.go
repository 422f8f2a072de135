package main

import "github.com/mcoot/chessclub/internal/cli"

func main() {
	cli.Execute()
}
