package main

import "github.com/chupacabra/chupacabra/internal/cli"

func main() {
	cli.Execute()
}
