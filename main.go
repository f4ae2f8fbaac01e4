package main

import "github.com/alexiusacademia/gorcdraft/cmd"

func main() {
	cmd.Execute()
}
