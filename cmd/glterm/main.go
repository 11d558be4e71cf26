// glterm reads Lisp-like data terms from files.
package main

import "github.com/alttpo/glterm/cmd/glterm/cmd"

func main() {
	cmd.Execute()
}
