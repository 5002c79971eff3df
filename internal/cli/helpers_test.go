package cli

import (
	"bytes"

	"github.com/toyz/importgen/internal/utils"
)

func newTestDiagnostics(buf *bytes.Buffer) *utils.DiagnosticSystem {
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticVerbose)
	diagnostics.SetOutput(buf, buf)
	return diagnostics
}
