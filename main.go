package main

import "github.com/jsphweid/scorekit/cmd"

func main() {
	cmd.Execute()
}
