// scenelint checks and inspects still-life scene scripts without opening a
// window.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		cmdCheck(args)
	case "list", "ls":
		cmdList(args)
	case "dump":
		cmdDump(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenelint - still-life scene script checker

Usage:
  scenelint <command> [options]

Commands:
  check [-textures dir] [scene.yaml]  Validate a script (built-in scene when omitted)
  list [scene.yaml]                   Print the draw list
  dump [output.yaml]                  Write the built-in scene as YAML

Examples:
  scenelint check
  scenelint check -textures ./textures my_scene.yaml
  scenelint list my_scene.yaml
  scenelint dump kitchen.yaml`)
}

func loadScript(args []string) *scene.Script {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	s, err := scene.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	textureDir := fs.String("textures", "", "Also decode every texture from this directory")
	verbose := fs.Bool("v", false, "Log texture decoding")
	fs.Parse(args)

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	s := loadScript(fs.Args())

	err := scene.Validate(s)
	if *textureDir != "" {
		err = multierr.Append(err, scene.CheckTextures(s, *textureDir))
	}

	problems := multierr.Errors(err)
	for _, p := range problems {
		fmt.Println(p)
	}
	if len(problems) > 0 {
		fmt.Printf("%d problem(s)\n", len(problems))
		os.Exit(1)
	}

	fmt.Printf("OK: %d textures, %d materials, %d point lights, %d steps\n",
		len(s.Textures), len(s.Materials), len(s.Lights.Points), len(s.Steps))
}

func cmdList(args []string) {
	s := loadScript(args)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPRIMITIVE\tSURFACE\tMATERIAL")
	for i, st := range s.Steps {
		surface := st.Texture
		if st.Color != nil {
			c := *st.Color
			surface = fmt.Sprintf("rgba(%.2f, %.2f, %.2f, %.2f)", c[0], c[1], c[2], c[3])
		}
		mat := st.Material
		if mat == "" {
			mat = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, st.Name, st.Primitive, surface, mat)
	}
	w.Flush()
}

func cmdDump(args []string) {
	s, err := scene.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 0 {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", args[0])
}
