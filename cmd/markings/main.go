// Command markings scans and renders ${key} templates from the command line.
package main

import "os"

func main() {
	os.Exit(Execute())
}
