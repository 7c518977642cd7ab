package main

import "github.com/zerodrill/zerodrill/cmd"

func main() {
	cmd.Execute()
}
