package main

import (
	"fmt"
	"os"

	"github.com/pdfdig/pdfdig/cmd/cmd"
	"github.com/pdfdig/pdfdig/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func PrintLogo() {
	fmt.Println("           _  __     _ _       ")
	fmt.Println(" _ __   __| |/ _| __| (_) __ _ ")
	fmt.Println("| '_ \\ / _` | |_ / _` | |/ _` |")
	fmt.Println("| |_) | (_| |  _| (_| | | (_| |")
	fmt.Println("| .__/ \\__,_|_|  \\__,_|_|\\__, |")
	fmt.Println("|_|                      |___/ ")
	fmt.Println()
	fmt.Println("Embedded image extractor for PDF files")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
