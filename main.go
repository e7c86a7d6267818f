package main

import "github.com/pmartineau/touchline/cmd"

func main() {
	cmd.Execute()
}
