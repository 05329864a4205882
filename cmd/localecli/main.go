package main

import "github.com/localenlp/relay/internal/cli"

func main() {
	cli.Execute()
}
