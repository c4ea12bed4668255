package main

import "github.com/mvogttech/geekfit/cmd/geekfit"

func main() {
	geekfit.Execute()
}
