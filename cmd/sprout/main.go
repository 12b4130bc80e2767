// Package main provides the Sprout ML Framework CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Sprout ML Framework %s\n", version)
		return
	}

	fmt.Println("Sprout ML Framework - Tensors, Autodiff and Training for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("See examples/mnist for a full training example.")
}
