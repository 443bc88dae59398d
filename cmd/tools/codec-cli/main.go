// cmd/tools/codec-cli/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"

	"qr-engine/internal/codec"
	"qr-engine/internal/common/config"
	"qr-engine/internal/common/errors"
	"qr-engine/internal/reference"
)

// fieldFlags collects repeated key=value flags.
type fieldFlags []string

func (f *fieldFlags) String() string { return strings.Join(*f, ",") }

func (f *fieldFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*f = append(*f, v)
	return nil
}

func main() {
	encodeCmd := flag.NewFlagSet("encode", flag.ExitOnError)
	qrType := encodeCmd.String("type", "", "QR type, e.g. vietqr")
	jsonPath := encodeCmd.String("json", "", "read the request from a JSON file, - for stdin")
	var strs, nums, bools fieldFlags
	encodeCmd.Var(&strs, "f", "string field key=value (repeatable)")
	encodeCmd.Var(&nums, "n", "numeric field key=value (repeatable)")
	encodeCmd.Var(&bools, "b", "boolean field key=value (repeatable)")
	encodeRef := referenceFlags(encodeCmd)

	banksCmd := flag.NewFlagSet("banks", flag.ExitOnError)
	banksRef := referenceFlags(banksCmd)

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encode":
		encodeCmd.Parse(os.Args[2:])
		tables := loadTables(*encodeRef)

		req, err := buildRequest(*qrType, *jsonPath, strs, nums, bools, os.Stdin)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		payload, err := codec.NewEngine(tables, codec.Options{}).EncodeRequest(req)
		if err != nil {
			printJSON(map[string]interface{}{"error": errors.AsStandardError(err)})
			os.Exit(2)
		}
		printJSON(map[string]interface{}{
			"type":        payload.Type,
			"payload":     payload.Canonical,
			"fingerprint": payload.Fingerprint(),
			"metadata":    payload.Metadata,
		})

	case "types":
		for _, t := range codec.AllTypes() {
			fmt.Println(t)
		}

	case "banks":
		banksCmd.Parse(os.Args[2:])
		tables := loadTables(*banksRef)
		for _, b := range tables.Banks() {
			fmt.Printf("%-12s %s  %s\n", b.Code, b.BIN, b.Name)
		}

	default:
		printUsage(os.Stdout)
		os.Exit(1)
	}
}

func referenceFlags(fs *flag.FlagSet) *string {
	return fs.String("reference", "", "reference table JSON file (defaults to the built-in tables)")
}

func loadTables(path string) *reference.Tables {
	cfg := config.ReferenceConfig{Source: config.ReferenceSourceStatic}
	if path != "" {
		cfg = config.ReferenceConfig{Source: config.ReferenceSourceFile, FilePath: path}
	}
	loader, err := reference.NewLoader(cfg, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	tables, err := loader.Load(context.Background())
	if err != nil {
		fmt.Printf("Error loading reference tables: %v\n", err)
		os.Exit(1)
	}
	return tables
}

// buildRequest assembles an encode request from a JSON document or from
// typed field flags. Flags override fields read from JSON.
func buildRequest(qrType, jsonPath string, strs, nums, bools fieldFlags, stdin io.Reader) (codec.Request, error) {
	req := codec.Request{Type: qrType, Fields: codec.RawFields{}}

	if jsonPath != "" {
		var r io.Reader = stdin
		if jsonPath != "-" {
			f, err := os.Open(jsonPath)
			if err != nil {
				return req, err
			}
			defer f.Close()
			r = f
		}
		var doc codec.Request
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return req, fmt.Errorf("invalid request JSON: %w", err)
		}
		if req.Type == "" {
			req.Type = doc.Type
		}
		for k, v := range doc.Fields {
			req.Fields[k] = v
		}
	}

	for _, kv := range strs {
		k, v, _ := strings.Cut(kv, "=")
		req.Fields[k] = v
	}
	for _, kv := range nums {
		k, v, _ := strings.Cut(kv, "=")
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return req, fmt.Errorf("field %s: %q is not a number", k, v)
		}
		req.Fields[k] = n
	}
	for _, kv := range bools {
		k, v, _ := strings.Cut(kv, "=")
		b, err := cast.ToBoolE(v)
		if err != nil {
			return req, fmt.Errorf("field %s: %q is not a boolean", k, v)
		}
		req.Fields[k] = b
	}

	if req.Type == "" {
		return req, fmt.Errorf("-type is required")
	}
	return req, nil
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

const usage = `
Usage: codec-cli <command> [options]

Commands:
  encode   Validate fields and print the canonical payload
           -type vietqr -f bankCode=VCB -f accountNumber=0123456789 -n amount=50000
           -json request.json   (or -json - to read stdin)
  types    List supported QR types
  banks    List the bank directory
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usage)
}
