/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/Kuberwastaken/meow/cmd/meow/cmd"

func main() {
	cmd.Execute()
}
