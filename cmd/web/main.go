package main

import "unimatch_backend/internal/app"

func main() {
	app.Run()
}
