package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for Lumen.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Amber/teal gradient, evoking fluorescence imaging
	s1 := termenv.String("  _                                ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(" | |   _   _ _ __ ___   ___ _ __   ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | |  | | | | '_ ` _ \\ / _ \\ '_ \\  ").Foreground(p.Color("#14b8a6"))
	s4 := termenv.String(" | |__| |_| | | | | | |  __/ | | | ").Foreground(p.Color("#0d9488"))
	s5 := termenv.String(" |_____\\__,_|_| |_| |_|\\___|_| |_| ").Foreground(p.Color("#0f766e"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
