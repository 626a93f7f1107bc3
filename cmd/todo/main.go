package main

import "github.com/4ast4orward/To-do-List/cmd/todo/root"

func main() {
	root.Execute()
}
