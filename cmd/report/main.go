// Package main provides the report command-line tool for missing-asset diagnostics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"cfmigrate/internal/diagnostics"
	"cfmigrate/pkg/stamp"
)

func main() {
	inputPath := flag.String("input", "missingAssets.json", "Missing assets JSON file")
	outputPath := flag.String("output", "", "Write a stamped markdown report here (default: stdout)")
	runID := flag.String("run", "manual", "Run id recorded in the report stamp")
	verifyPath := flag.String("verify", "", "Verify the stamp of an existing report and exit")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *verifyPath != "" {
		os.Exit(verify(*verifyPath))
	}

	entries, err := diagnostics.LoadJSON(*inputPath)
	if err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	if *outputPath == "" {
		fmt.Println(diagnostics.Report(entries))

		return
	}

	if err := diagnostics.WriteReport(*outputPath, *runID, entries); err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	fmt.Printf("✅ %d entries written to %s\n", len(entries), *outputPath)
}

func verify(path string) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)

		return 1
	}

	s, err := stamp.Verify(string(content))
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)

		return 1
	}

	fmt.Printf("✅ %s: run %s, %d entries, generated %s\n", path, s.RunID, s.Entries, s.Generated.Format("2006-01-02 15:04"))

	return 0
}

func printUsage() {
	fmt.Println("Usage: ./bin/report [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/report -input out/missingAssets.json")
	fmt.Println("  ./bin/report -input out/missingAssets.json -output out/missingAssets.md")
	fmt.Println("  ./bin/report -verify out/missingAssets.md")
}
