// Copyright © 2026 The ELPS authors

package main

import "github.com/haerfest/nextlisp/cmd"

func main() {
	cmd.Execute()
}
