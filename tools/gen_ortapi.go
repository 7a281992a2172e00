// Command gen_ortapi regenerates ort/ortapi.go from onnxruntime_c_api.h.
//
// It walks the C OrtApi struct with regex-based line matching, collects the
// function-pointer names in declaration order, and emits the Go mirror table
// truncated after RunAsync, the highest entry the binding registers. The
// parsing is deliberately simple; it works for the current header layout and
// fails loudly, via the position checks below, if the header changes shape.
//
// Usage:
//
//	go run tools/gen_ortapi.go <path-to-onnxruntime_c_api.h> > ort/ortapi.go
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"os"
	"regexp"
	"strings"
)

// lastRegisteredEntry is the final field of the emitted table. Entries past
// it exist in the header but are never dereferenced by the binding.
const lastRegisteredEntry = "RunAsync"

// keyPositions pins well-known entries to their 1-indexed table offsets.
// A mismatch means the parser misread the header, which would silently shift
// every function pointer the binding registers.
var keyPositions = map[string]int{
	"CreateEnv":                      4,
	"CreateTensorWithDataAsOrtValue": 50,
	"CreateMemoryInfo":               69,
	"ReleaseEnv":                     93,
}

type tableEntry struct {
	name string
	// gapBefore marks entries preceded by comments or blank lines in the
	// header; the emitter turns it into a blank line so the generated table
	// keeps the header's visual grouping.
	gapBefore bool
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <path-to-onnxruntime_c_api.h>\n", os.Args[0])
		os.Exit(1)
	}

	entries, err := parseHeader(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gen_ortapi: %v\n", err)
		os.Exit(1)
	}

	if err := validate(entries); err != nil {
		fmt.Fprintf(os.Stderr, "gen_ortapi: %v\n", err)
		os.Exit(1)
	}

	source, err := render(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gen_ortapi: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(source)
}

var (
	structStartPattern = regexp.MustCompile(`^struct OrtApi \{`)
	structEndPattern   = regexp.MustCompile(`^\s*\};`)
	// ORT_API2_STATUS(Name, ...) declares a status-returning entry.
	api2StatusPattern = regexp.MustCompile(`ORT_API2_STATUS\((\w+),`)
	// Plain function pointers: "const char*(ORT_API_CALL* GetErrorMessage)".
	funcPtrPattern = regexp.MustCompile(`^\s*(?:OrtStatus|OrtErrorCode|const char|void|uint64_t)\s*\**\s*\(\s*ORT_API_CALL\s*\*\s*(\w+)\)`)
	// ORT_CLASS_RELEASE(Env) expands to ReleaseEnv.
	classReleasePattern = regexp.MustCompile(`ORT_CLASS_RELEASE\((\w+)\)`)
)

func parseHeader(path string) ([]tableEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []tableEntry
	inStruct := false
	gapPending := false

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if !inStruct {
			if structStartPattern.MatchString(line) {
				inStruct = true
			}
			continue
		}
		if structEndPattern.MatchString(line) {
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") {
			gapPending = len(entries) > 0
			continue
		}

		name := entryName(line)
		if name == "" {
			continue
		}
		entries = append(entries, tableEntry{name: name, gapBefore: gapPending})
		gapPending = false

		if name == lastRegisteredEntry {
			return entries, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !inStruct {
		return nil, fmt.Errorf("no OrtApi struct found in %s", path)
	}
	return nil, fmt.Errorf("reached end of OrtApi struct without finding %s", lastRegisteredEntry)
}

func entryName(line string) string {
	if m := api2StatusPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := funcPtrPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := classReleasePattern.FindStringSubmatch(line); m != nil {
		return "Release" + m[1]
	}
	return ""
}

func validate(entries []tableEntry) error {
	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		if prev, dup := seen[entry.name]; dup {
			return fmt.Errorf("duplicate entry %s at positions %d and %d", entry.name, prev, i+1)
		}
		seen[entry.name] = i + 1
	}
	for name, want := range keyPositions {
		got, ok := seen[name]
		if !ok {
			return fmt.Errorf("key entry %s not found", name)
		}
		if got != want {
			return fmt.Errorf("key entry %s at position %d, want %d", name, got, want)
		}
	}
	return nil
}

// handleTypes is emitted verbatim ahead of the table; these wrappers are part
// of the generated file so the whole of ortapi.go has a single source.
const handleTypes = `// Opaque native handles. Each is a raw pointer owned by exactly one wrapper
// object; 0 is the invalid/released sentinel.

// OrtStatus is a native success/error indicator. 0 means success; a non-zero
// handle must be translated and released exactly once.
type OrtStatus uintptr

// OrtEnv is a native environment handle.
type OrtEnv uintptr

// OrtSession is a native inference-session handle.
type OrtSession uintptr

// OrtSessionOptions is a native session-options handle.
type OrtSessionOptions uintptr

// OrtValue is a native value handle (typically a tensor).
type OrtValue uintptr

// OrtAllocator is a native allocator handle.
type OrtAllocator uintptr

// OrtMemoryInfo is a native memory-descriptor handle.
type OrtMemoryInfo uintptr

// OrtTensorTypeAndShapeInfo is a native tensor metadata handle.
type OrtTensorTypeAndShapeInfo uintptr

// OrtRunOptions is a native per-invocation options handle.
type OrtRunOptions uintptr

// OrtIoBinding is a native input/output binding handle.
type OrtIoBinding uintptr

// ortAPIBase mirrors the C OrtApiBase struct returned by OrtGetApiBase.
type ortAPIBase struct {
	GetApi           uintptr
	GetVersionString uintptr
}
`

func render(entries []tableEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by tools/gen_ortapi.go from onnxruntime_c_api.h; DO NOT EDIT.\n\n")
	buf.WriteString("package ort\n\n")
	buf.WriteString(handleTypes)
	buf.WriteString("\n")
	buf.WriteString("// ortAPITable mirrors the C OrtApi function-pointer table. Field order must\n")
	buf.WriteString("// match onnxruntime_c_api.h exactly; offsets are load-bearing. The table is\n")
	buf.WriteString("// truncated after RunAsync, the highest entry this binding registers;\n")
	buf.WriteString("// trailing entries are never dereferenced.\n")
	buf.WriteString("type ortAPITable struct {\n")
	for _, entry := range entries {
		if entry.gapBefore {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "\t%s uintptr\n", entry.name)
	}
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}
