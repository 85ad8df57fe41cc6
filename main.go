package main

import "github.com/wasmup/wasmup/cmd"

func main() {
	cmd.Execute()
}
