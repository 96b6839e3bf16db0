package main

import (
	"fabplan.dev/backend/cmd/app"
)

func main() {
	app.Run()
}
