// Command worktime runs the workday arithmetic of the timesheet offline.
package main

func main() {
	Execute()
}
