// Command delegategen generates forwarding types that let a
// delegate chain synthesize composites for interfaces.
//
//	//go:generate delegategen -i Duck,Walker -o duck_delegate.go
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
