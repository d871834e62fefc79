// Command decltype is an interactive prompt that parses a line of input as
// a C declaration-specifier sequence, canonicalizes it, and reports
// whether the resolved type was already present in a shared type table.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/crimeraaa/dsa-sub000/decl"
	"github.com/crimeraaa/dsa-sub000/mem"
	"github.com/crimeraaa/dsa-sub000/strs"
)

func main() {
	os.Exit(run())
}

func run() int {
	arena, err := mem.NewRegion()
	if err != nil {
		fmt.Fprintf(os.Stderr, "decltype: failed to reserve initial arena: %v\n", err)
		return 1
	}
	defer arena.Destroy()

	table, err := decl.NewTable(mem.Panic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decltype: failed to build type table: %v\n", err)
		return 1
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		runLine(arena, table, scanner.Bytes())
	}
	return 0
}

func runLine(arena *mem.Region, table *decl.Table, line []byte) {
	defer arena.FreeAll()

	parser := decl.NewParser()
	parser.Diag = os.Stdout

	lexer := decl.NewLexer(line)
	ok, err := parser.Parse(lexer)
	if !ok {
		_ = err // already reported via parser.Diag
		printUsage(arena)
		return
	}

	builder := strs.NewBuilder(arena.Allocator())
	if _, err := parser.CanonicalizeInto(builder); err != nil {
		fmt.Fprintf(os.Stderr, "decltype: failed to canonicalize: %v\n", err)
		printUsage(arena)
		return
	}
	fmt.Printf("Expr: %s\n", builder.View())

	if entry := table.GetBasicQual(parser.Type.BasicKind, parser.Qualifiers); entry != nil {
		fmt.Printf("Found existing entry @ %p\n", entry)
	} else {
		fmt.Println("First time seeing this type. Adding...")
		entry, err := table.AddBasicQual(parser.Type.BasicKind, parser.Qualifiers)
		if err != nil {
			fmt.Printf("Could not add entry: %v\n", err)
		} else {
			fmt.Printf("Inserted entry @ %p\n", entry)
		}
	}

	printUsage(arena)
}

func printUsage(arena *mem.Region) {
	used, total := arena.Usage()
	fmt.Printf("=== ARENA INFO ===\nBegin: %#x\nEnd:   %#x\nUsage: %d bytes (out of %d)\n==================\n\n",
		arena.Begin(), arena.End(), used, total)
}
