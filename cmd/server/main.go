package main

import "github.com/campuslane/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
