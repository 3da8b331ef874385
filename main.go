package main

import "github.com/ioccc-src/submitcheck/cmd"

func main() {
	cmd.Execute()
}
