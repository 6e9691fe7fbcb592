package main

import "github.com/nsip/otf-locode/cmd/locode-assign/cmd"

func main() {
	cmd.Execute()
}
