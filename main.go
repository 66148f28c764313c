package main

import "github.com/kamusis/orbweight/cmd"

func main() {
	cmd.Execute()
}
