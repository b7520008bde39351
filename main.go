package main

import "github.com/philipparndt/cylinter/internal/cmd"

func main() {
	cmd.Parse()
}
