package main

import "github.com/stevenmcsorley/rn-kit/cmd/rnkit"

func main() {
	rnkit.Execute()
}
