package main

import (
	"os"

	"github.com/GoMembership/GoMembership/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
