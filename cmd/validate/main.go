package main

import (
	"fmt"
	"os"
)

func main() {
	dir := "./data"
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [content_dir]\n", os.Args[0])
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		dir = os.Args[1]
	}

	fmt.Printf("Validating %s...\n", dir)
	validator, err := NewContentValidator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load schemas: %v\n", err)
		os.Exit(1)
	}

	if err := validator.Validate(os.DirFS(dir)); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Content is valid!")
}
