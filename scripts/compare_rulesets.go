// compare_rulesets.go - Compare default and legacy rule set output on a file
//
// Usage: go run scripts/compare_rulesets.go <file.html>
//
// Example:
//   go run scripts/compare_rulesets.go /tmp/word-paste.html

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/khawkins98/ckeditor-clean-styles/pkg/cleaner/cleanstyles"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/compare_rulesets.go <file.html>")
		os.Exit(1)
	}

	path := os.Args[1]
	body, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	html := string(body)

	fmt.Printf("Input size: %d bytes\n\n", len(html))

	// =====================================================
	// Method 1: Default rule set (Word, Word Online, WPS, Apple)
	// =====================================================
	fmt.Println(strings.Repeat("=", 61))
	fmt.Println("METHOD 1: Default rule set")
	fmt.Println(strings.Repeat("=", 61))

	c1, err := cleanstyles.New(cleanstyles.DefaultRuleSet())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building cleaner: %v\n", err)
		os.Exit(1)
	}
	result1 := c1.CleanWithStats(html)

	fmt.Printf("Output size: %d bytes (%.1f%% reduction)\n",
		result1.Stats.OutputBytes, result1.Stats.ReductionPercent())
	fmt.Printf("Attributes removed: %d, class tokens dropped: %d, empty blocks pruned: %d\n",
		result1.Stats.AttributesRemoved, result1.Stats.ClassTokensDropped, result1.Stats.EmptyBlocksPruned)

	os.WriteFile("/tmp/method1_default.html", []byte(result1.Content), 0644)
	fmt.Println("Saved to: /tmp/method1_default.html")

	fmt.Println("\n--- Preview (first 2000 chars) ---")
	preview1 := result1.Content
	if len(preview1) > 2000 {
		preview1 = preview1[:2000] + "\n..."
	}
	fmt.Println(preview1)

	// =====================================================
	// Method 2: Legacy rule set (class and lang stripping only)
	// =====================================================
	fmt.Println("\n" + strings.Repeat("=", 61))
	fmt.Println("METHOD 2: Legacy rule set")
	fmt.Println(strings.Repeat("=", 61))

	c2, err := cleanstyles.New(cleanstyles.LegacyRuleSet())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building cleaner: %v\n", err)
		os.Exit(1)
	}
	result2 := c2.CleanWithStats(html)

	fmt.Printf("Output size: %d bytes (%.1f%% reduction)\n",
		result2.Stats.OutputBytes, result2.Stats.ReductionPercent())

	os.WriteFile("/tmp/method2_legacy.html", []byte(result2.Content), 0644)
	fmt.Println("Saved to: /tmp/method2_legacy.html")

	fmt.Println("\n--- Preview (first 2000 chars) ---")
	preview2 := result2.Content
	if len(preview2) > 2000 {
		preview2 = preview2[:2000] + "\n..."
	}
	fmt.Println(preview2)

	// =====================================================
	// Summary
	// =====================================================
	fmt.Println("\n" + strings.Repeat("=", 61))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 61))
	fmt.Printf("Method 1 (default): %d bytes, %d attributes removed\n",
		result1.Stats.OutputBytes, result1.Stats.AttributesRemoved)
	fmt.Printf("Method 2 (legacy):  %d bytes, %d attributes removed\n",
		result2.Stats.OutputBytes, result2.Stats.AttributesRemoved)
	fmt.Println("\nFiles saved for diff:")
	fmt.Println("  /tmp/method1_default.html")
	fmt.Println("  /tmp/method2_legacy.html")
}
