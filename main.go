package main

import "github.com/vibast-solutions/ms-go-qrplatba/cmd"

func main() {
	cmd.Execute()
}
