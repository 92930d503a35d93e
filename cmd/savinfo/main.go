package main

import "github.com/arloliu/savkit/cmd/savinfo/cmd"

func main() {
	cmd.Execute()
}
