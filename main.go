/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/lostfound/moderation/cmd"

func main() {
	cmd.Execute()
}
