// dexrun executes a single CBOR-encoded method image on a minimal host
// runtime. It exists for poking at self-contained methods (arithmetic,
// control flow, throws); resolution, allocation, and invokes need a real
// runtime and pend a LinkageError here.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/dexvm/vm"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	configDir := flag.String("c", ".", "Directory containing dexvm.toml")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dexrun [options] <method.cbor>\n\n")
		fmt.Fprintf(os.Stderr, "Executes a serialized method image and prints the raw result.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := vm.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	commonlog.Configure(cfg.LogVerbosity, nil)

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading image: %v\n", err)
		os.Exit(1)
	}
	img, err := vm.UnmarshalMethodImage(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding image: %v\n", err)
		os.Exit(1)
	}

	rt := newMiniRuntime()
	method, err := img.Realize(rt.resolveDescriptor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error realizing method: %v\n", err)
		os.Exit(1)
	}

	t := vm.NewThread(rt)
	t.Instrumentation().Trace = cfg.Trace

	frame := vm.NewShadowFrame(method, method.Code.RegistersSize)
	frame.SetDexPC(0)

	var result vm.Value
	if cfg.AccessChecks {
		result = vm.ExecuteAccessChecks(t, method, method.Code, frame, vm.Value{})
	} else {
		result = vm.Execute(t, method, method.Code, frame, vm.Value{})
	}

	if t.IsExceptionPending() {
		fmt.Fprintf(os.Stderr, "Uncaught exception: %v\n", t.Exception())
		os.Exit(1)
	}
	fmt.Printf("int=%d long=%d float=%g double=%g\n",
		result.Int(), result.Long(), result.Float(), result.Double())
}
