package main

import (
	"os"

	"github.com/blackwell-systems/snapguard/internal/app"
)

func main() {
	os.Exit(app.Execute())
}
