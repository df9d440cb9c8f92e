/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/catbot/cmd"
	"github.com/cristianoliveira/catbot/internal/colors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
