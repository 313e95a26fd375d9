package cli

import (
	"bytes"
	"testing"
)

// captureJSON enables JSON output and returns what fn writes as JSON.
func captureJSON(t *testing.T, fn func()) string {
	t.Helper()

	prevJSON, prevOut := jsonOutput, jsonOut
	t.Cleanup(func() {
		jsonOutput, jsonOut = prevJSON, prevOut
	})

	var buf bytes.Buffer
	jsonOutput = true
	jsonOut = &buf
	fn()
	return buf.String()
}
