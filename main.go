package main

import (
	"os"

	"github.com/coolashishranjan44551-bit/Gen-Ai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
