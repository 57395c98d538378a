package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/config"
	"libscribe-hq/libscribe/pkg/telemetry/logging"
)

const (
	axisFun = `FUNCTION_BLOCK MoveAxis (*Moves one axis*)
	VAR_INPUT
		Enable : BOOL;
		Target : ARRAY[0..MAXX] OF AxisPos;
	END_VAR
	VAR_OUTPUT
		Done : BOOL;
	END_VAR
END_FUNCTION_BLOCK

FUNCTION Clamp : INT
	VAR_INPUT
		value : INT;
	END_VAR
END_FUNCTION
`
	axisTyp = `TYPE
	AxisPos : STRUCT
		x : REAL;
		y : REAL;
	END_STRUCT;
	Mode : (
		IDLE,
		RUN
	);
END_TYPE
`
	axisVar = `VAR CONSTANT
	MAXX : USINT := 4;
END_VAR
`
	axisLby = `<?xml version="1.0" encoding="utf-8"?>
<?AutomationStudio FileVersion="4.9"?>
<Library Version="2.01.0" SubType="IEC" Description="Axis helpers" xmlns="http://br-automation.co.at/AS/Library">
  <Dependencies>
    <Dependency ObjectName="BaseLib" />
  </Dependencies>
</Library>
`
	baseFun = `FUNCTION Init : BOOL
	VAR_INPUT
		cfg : BaseCfg;
	END_VAR
END_FUNCTION
`
	baseTyp = `TYPE
	BaseCfg : STRUCT
		period : UDINT;
	END_STRUCT;
END_TYPE
`
	consumerFun = `FUNCTION Use : BOOL
	VAR_INPUT
		cfg : BaseCfg;
	END_VAR
END_FUNCTION
`
)

// testApp installs a default configuration with the catalog in a
// temporary directory.
func testApp(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "catalog.db")
	current = newApp(cfg, logging.Nop())
	t.Cleanup(func() { current = nil })
	return cfg
}

func writeLibrary(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func axisLibrary(t *testing.T, root string) string {
	t.Helper()
	return writeLibrary(t, filepath.Join(root, "AxisLib"), map[string]string{
		"AxisLib.fun":     axisFun,
		"AxisLib.lby":     axisLby,
		"Types/Axis.typ":  axisTyp,
		"Types/Const.var": axisVar,
	})
}

func baseLibrary(t *testing.T, root string) string {
	t.Helper()
	return writeLibrary(t, filepath.Join(root, "BaseLib"), map[string]string{
		"BaseLib.fun": baseFun,
		"BaseLib.typ": baseTyp,
	})
}

// run calls a command function with captured output.
func run(t *testing.T, fn func(*cobra.Command, []string) error, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetContext(context.Background())
	err := fn(cmd, args)
	return out.String(), err
}
