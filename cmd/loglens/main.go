package main

import "github.com/NoreeIsmael/Next-Project/internal/cmd"

func main() {
	cmd.Execute()
}
