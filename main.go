package main

import "fetenahub-backend/cmd"

func main() {
	cmd.Run()
}
