// Command compaqtcli is a small front end over the compaqt codec:
// encode a JSON document to the wire format, decode a wire file back to
// JSON, or check that a file is a well-formed frame.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/compaqt-go/compaqt"
)

func printFatal(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func encodeCommand(c *cli.Context) error {
	args := c.Args()
	if len(args) < 2 {
		printFatal("usage: compaqtcli encode <input.json> <output.bin>")
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		printFatal("reading %s: %v", args[0], err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		printFatal("parsing %s: %v", args[0], err)
	}

	var opts []compaqt.EncodeOption
	if c.Bool("stream-compatible") {
		opts = append(opts, compaqt.WithStreamCompatible())
	}

	data, err := compaqt.Encode(fromJSONValue(doc), opts...)
	if err != nil {
		printFatal("encoding: %v", err)
	}

	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		printFatal("writing %s: %v", args[1], err)
	}

	fmt.Printf("wrote %d bytes to %s\n", len(data), args[1])

	return nil
}

func decodeCommand(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		printFatal("usage: compaqtcli decode <input.bin>")
	}

	v, err := compaqt.DecodeFile(args[0])
	if err != nil {
		printFatal("decoding %s: %v", args[0], err)
	}

	out, err := json.MarshalIndent(toJSONValue(v), "", "  ")
	if err != nil {
		printFatal("rendering decoded value: %v", err)
	}

	if outPath := c.String("out"); outPath != "" {
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			printFatal("writing %s: %v", outPath, err)
		}

		return nil
	}

	fmt.Println(string(out))

	return nil
}

func validateCommand(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		printFatal("usage: compaqtcli validate <input.bin>")
	}

	ok, err := compaqt.ValidateFile(args[0])
	if err != nil {
		printFatal("validating %s: %v", args[0], err)
	}

	if !ok {
		fmt.Println("invalid")
		os.Exit(1)
	}

	fmt.Println("valid")

	return nil
}

// fromJSONValue converts a json.Decoder(UseNumber)'d tree into the host
// values Encode expects: json.Number becomes int64 when it fits exactly,
// float64 otherwise, and nested objects/arrays recurse.
func fromJSONValue(v any) any {
	switch vv := v.(type) {
	case json.Number:
		if n, err := vv.Int64(); err == nil {
			return n
		}
		f, _ := vv.Float64()

		return f
	case map[string]any:
		m := compaqt.NewMap(len(vv))
		for k, val := range vv {
			m.Append(k, fromJSONValue(val))
		}

		return m
	case []any:
		items := make([]any, len(vv))
		for i, item := range vv {
			items[i] = fromJSONValue(item)
		}

		return items
	default:
		return vv
	}
}

// toJSONValue converts a compaqt.Decode result into a tree
// encoding/json can marshal: *compaqt.Map becomes map[string]any
// (losing wire order, a display-only concession) and zero-copy views
// become the plain string or []byte they wrap.
func toJSONValue(v any) any {
	switch vv := v.(type) {
	case *compaqt.Map:
		out := make(map[string]any, vv.Len())
		for _, kv := range vv.Pairs() {
			out[kv.Key] = toJSONValue(kv.Value)
		}

		return out
	case []any:
		items := make([]any, len(vv))
		for i, item := range vv {
			items[i] = toJSONValue(item)
		}

		return items
	case compaqt.StringView:
		return vv.String()
	case compaqt.BytesView:
		return vv.Bytes()
	default:
		return vv
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "compaqtcli"
	app.Usage = "encode, decode, and validate compaqt wire files"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "compaqtcli encode <input.json> <output.bin> -- encode a JSON document to the wire format",
			ArgsUsage: "<input.json> <output.bin>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "stream-compatible",
					Usage: "force the outer container header to the 9-byte Mode-3/8 form",
				},
			},
			Action: encodeCommand,
		},
		{
			Name:      "decode",
			Usage:     "compaqtcli decode <input.bin> -- decode a wire file and print it as JSON",
			ArgsUsage: "<input.bin>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out",
					Usage: "write the decoded JSON to this path instead of stdout",
				},
			},
			Action: decodeCommand,
		},
		{
			Name:      "validate",
			Usage:     "compaqtcli validate <input.bin> -- check that a file holds one well-formed frame",
			ArgsUsage: "<input.bin>",
			Action:    validateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		printFatal("%v", err)
	}
}
