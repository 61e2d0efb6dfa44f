// netkit is a CLI front end over the netkit address/classification/
// subnet/decode libraries.
package main

import "github.com/netkit-go/netkit/cmd/netkit/commands"

func main() {
	commands.Execute()
}
