// robomjcf exports robot descriptions to MuJoCo MJCF documents.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/robomjcf/internal/config"
	"github.com/Faultbox/robomjcf/internal/logger"
	"github.com/Faultbox/robomjcf/internal/modelfile"
	"github.com/Faultbox/robomjcf/pkg/mjcf"
	"github.com/Faultbox/robomjcf/pkg/robot"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export", "x":
		cmdExport(args)
	case "inspect", "tree":
		cmdInspect(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`robomjcf - export robot models to MuJoCo MJCF

Usage:
  robomjcf <command> [options]

Commands:
  export [options] <model.yaml>   Write robot.xml and scene.xml
  inspect <model.yaml>            Print the kinematic tree
  init [path]                     Write a default config file

Export options:
  -config <file>        Config file (default: ./robomjcf.yaml)
  -out <dir>            Output directory
  -no-dynamics          Omit inertial elements
  -shapes-only          Use only primitive shapes for collisions
  -draw-collisions      Render collision geometry as visuals
  -additional-xml <f>   XML fragment to splice into the document
  -debug                Enable debug logging

Examples:
  robomjcf export -out ./mujoco arm.yaml
  robomjcf inspect arm.yaml
  robomjcf init robomjcf.yaml`)
}

func cmdExport(args []string) {
	if err := runExport(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runExport writes the MJCF files for one model. Once the logger is up,
// every return path flushes it.
func runExport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var flags config.Flags
	flags.Register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errors.New("usage: robomjcf export [options] <model.yaml>")
	}
	modelPath := fs.Arg(0)

	cfg, err := config.Load(&flags, modelPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()

	r, err := modelfile.Load(modelPath)
	if err != nil {
		logger.Error("loading model failed", zap.String("model", modelPath), zap.Error(err))
		return err
	}

	logger.Info("exporting robot",
		zap.String("robot", r.Name),
		zap.Int("links", len(r.Links)),
		zap.Int("joints", len(r.Joints)),
	)

	exp := mjcf.New(cfg.ExportOptions(), logger.Named("mjcf"))
	if err := exp.WriteXML(r, cfg.OutputPath()); err != nil {
		logger.Error("export failed", zap.Error(err))
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s (%d assets)\n", cfg.OutputPath(), exp.Assets().Len())
	return nil
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: robomjcf inspect <model.yaml>")
		os.Exit(1)
	}

	r, err := modelfile.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printTree(os.Stdout, r)
}

func cmdInit(args []string) {
	path := "robomjcf.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", path)
		os.Exit(1)
	}

	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

// printTree writes the kinematic tree rooted at the base link.
func printTree(w io.Writer, r *robot.Robot) {
	fmt.Fprintf(w, "Robot: %s\n", r.Name)
	fmt.Fprintf(w, "Links: %d  Joints: %d\n\n", len(r.Links), len(r.Joints))
	printLink(w, r, r.BaseLink(), nil, 0)
}

func printLink(w io.Writer, r *robot.Robot, link *robot.Link, via *robot.Joint, depth int) {
	indent := strings.Repeat("  ", depth)
	if via != nil {
		desc := via.Type.String()
		if via.Limits != nil {
			desc += fmt.Sprintf(" [%g, %g]", via.Limits.Lower, via.Limits.Upper)
		}
		fmt.Fprintf(w, "%s+- %s (%s)\n", indent, via.Name, desc)
		indent += "   "
	}

	fmt.Fprintf(w, "%s%s", indent, link.Name)
	if len(link.Parts) > 0 {
		fmt.Fprintf(w, "  parts=%d", len(link.Parts))
	}
	if len(link.Frames) > 0 {
		fmt.Fprintf(w, "  frames=%d", len(link.Frames))
	}
	if link.Dynamics == nil {
		fmt.Fprint(w, "  (no dynamics)")
	}
	fmt.Fprintln(w)

	for _, j := range r.ChildJoints(link) {
		printLink(w, r, j.Child, j, depth+1)
	}
}
