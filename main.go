// SPDX-License-Identifier: MPL-2.0

package main

import cmd "rpmgen-cli/cmd/rpmgen"

func main() {
	cmd.Execute()
}
