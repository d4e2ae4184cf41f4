// This program provides a command line client for the bank service.
package main

import "github.com/feliperdao/kipubank/app/tooling/kipu/cmd"

func main() {
	cmd.Execute()
}
