package cli

import "github.com/fatih/color"

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	successStyle = color.New(color.FgGreen)
	boldStyle    = color.New(color.Bold)
	dimStyle     = color.New(color.Faint)
)
