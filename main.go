package main

import "github.com/carmacs2023/photo-tools/cmd"

func main() {
	cmd.Execute()
}
