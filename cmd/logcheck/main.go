// Command logcheck validates a /api/log payload read from stdin without a
// running server, printing the field errors the API would return.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"postman-backend/internal/helper"
	"postman-backend/internal/model/webrequest"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

// run returns 0 for a valid payload, 1 for an invalid one and 2 on I/O failure.
func run(in io.Reader, out, errOut io.Writer) int {
	b, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(errOut, "read stdin: %v\n", err)
		return 2
	}

	var r webrequest.SaveLogRequest
	if err := helper.ReadJSONFromByte(b, &r); err != nil {
		fmt.Fprintf(errOut, "decode: %v\n", err)
		for _, e := range helper.DecodeErrors(err) {
			fmt.Fprintf(out, "%s: %s\n", e.Field, e.Message)
		}
		return 1
	}

	if errs := r.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(out, "%s: %s\n", e.Field, e.Message)
		}
		return 1
	}

	entry, err := json.MarshalIndent(r.ToEntity(), "", "  ")
	if err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 2
	}
	if id, ok := r.TargetID(); ok {
		fmt.Fprintf(out, "valid, updates log %d when it exists\n", id)
	} else {
		fmt.Fprintln(out, "valid, creates a new log")
	}
	fmt.Fprintln(out, string(entry))
	return 0
}
