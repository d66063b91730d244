package main

import "task-desk.com/task-desk/cmd"

func main() {
	cmd.Execute()
}
