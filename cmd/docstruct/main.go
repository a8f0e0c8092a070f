// Command docstruct converts documents into section trees and reports on
// their structure from the command line.
package main

func main() {
	Execute()
}
