package main

import "github.com/zxfonline/ultrafast/cmd"

func main() {
	cmd.Execute()
}
