package main

import "github.com/Caden-Dane/cadenbudget/cmd"

func main() {
	cmd.Execute()
}
