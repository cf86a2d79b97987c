package main

import (
	"os"

	"ragchat/client/internal/app"
)

func main() {
	os.Exit(app.Run())
}
