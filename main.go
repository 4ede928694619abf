package main

import "github.com/ckearl/senahpark.com/cmd"

func main() {
	cmd.Execute()
}
