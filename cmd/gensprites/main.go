package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/puffinarcade/internal/placeholders"
)

func main() {
	out := flag.String("out", "assets", "directory to write sprites.png into")
	flag.Parse()

	fmt.Println("Puffin Arcade Sprite Generator")
	fmt.Println("==============================")

	path, err := placeholders.GenerateAndSave(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", path)
}
