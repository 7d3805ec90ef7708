package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Test Helpers --

// quietConfig writes a config file that silences logging and disables the AI
// provider, keeping command tests hermetic.
func quietConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "logger:\n  level: fatal\n  log_file: \"\"\nllm:\n  provider: none\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// executeCommand runs a pristine root command with captured output. Each call
// builds a fresh command tree so flag state never leaks between tests.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--config", quietConfig(t)}, args...))
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// writeVendorFile marshals a vendor input into a temp JSON file.
func writeVendorFile(t *testing.T, name string, input schemas.VendorInput) string {
	t.Helper()
	data, err := json.Marshal(input)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func quoteInput(vendor string, unitPrice float64) schemas.VendorInput {
	return schemas.VendorInput{
		RawDocument: schemas.RawQuotation{
			VendorName:    vendor,
			Currency:      "USD",
			DeliveryTerms: "10 days",
			LineItems: []schemas.LineItem{
				{Description: "Widget", Quantity: 1, UnitPrice: unitPrice},
			},
		},
	}
}
