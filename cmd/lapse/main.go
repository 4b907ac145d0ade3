package main

import "github.com/MeKo-Tech/lapse/cmd/lapse/cmd"

func main() {
	cmd.Execute()
}
