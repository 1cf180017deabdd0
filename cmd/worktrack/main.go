// Command worktrack lists projects and tasks and exports timesheets from the
// same REST backend the web UI talks to.
package main

func main() {
	Execute()
}
