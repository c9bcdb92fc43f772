// scenetool inspects the attic scene without opening a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/attic3d/internal/assets"
	"github.com/Faultbox/attic3d/internal/engine/lighting"
	"github.com/Faultbox/attic3d/internal/engine/material"
	"github.com/Faultbox/attic3d/internal/engine/mesh"
	"github.com/Faultbox/attic3d/internal/engine/scene"
	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/engine/shader/shadertest"
	"github.com/Faultbox/attic3d/internal/engine/texture"
	"github.com/Faultbox/attic3d/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "dump":
		err = cmdDump(args)
	case "lights":
		err = cmdLights(args)
	case "materials":
		err = writeMaterials(os.Stdout)
	case "textures":
		err = cmdTextures(args)
	case "trace":
		err = cmdTrace(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - attic scene inspector

Usage:
  scenetool <command> [options]

Commands:
  dump [-format yaml|toml] [-o file]      Write every placement
  lights [-t seconds] [-format yaml|toml] Resolve the light rig at a time
  materials                               List the material catalog
  textures <dir>...                       Decode every attic texture
  trace [-pass color|depth]               Run one pass against a recorder

Examples:
  scenetool dump -format toml -o attic.toml
  scenetool lights -t 1.57
  scenetool textures ./textures ~/attic/textures`)
}

// Format is an output encoding.
type Format string

const (
	formatYAML Format = "yaml"
	formatTOML Format = "toml"
)

var errFormat = errors.New("unknown format")

func parseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case formatYAML, formatTOML:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (want yaml or toml)", errFormat, s)
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case formatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w %q", errFormat, f)
}

// dumpDoc is the top-level document of a dump. TOML needs a table at the
// root, so the list is wrapped.
type dumpDoc struct {
	Placements scene.Script `yaml:"placements" toml:"placements"`
}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	format := fs.String("format", "yaml", "Output format: yaml or toml")
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	f, err := parseFormat(*format)
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *out, err)
		}
		defer file.Close()
		w = file
	}
	return writeDump(w, f)
}

func writeDump(w io.Writer, f Format) error {
	return encode(w, f, dumpDoc{Placements: scene.Attic()})
}

func cmdLights(args []string) error {
	fs := flag.NewFlagSet("lights", flag.ExitOnError)
	seconds := fs.Float64("t", 0, "Elapsed time in seconds")
	format := fs.String("format", "yaml", "Output format: yaml or toml")
	ambient := fs.Float64("ambient", 0.05, "Global ambient level")
	deskLamp := fs.Bool("desk-lamp", false, "Switch on the desk lamp slot")
	fs.Parse(args)

	f, err := parseFormat(*format)
	if err != nil {
		return err
	}
	elapsed := time.Duration(*seconds * float64(time.Second))
	return writeLights(os.Stdout, f, lighting.Attic(float32(*ambient), *deskLamp), elapsed)
}

func writeLights(w io.Writer, f Format, rig *lighting.Rig, elapsed time.Duration) error {
	return encode(w, f, rig.Snapshot(elapsed))
}

func writeMaterials(w io.Writer) error {
	reg := material.NewRegistry(zap.NewNop())
	reg.DefineAll(material.Attic())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tDIFFUSE\tSPECULAR\tSHININESS\tTEXTURED")
	for _, m := range reg.All() {
		fmt.Fprintf(tw, "%s\t%.2f %.2f %.2f\t%.2f %.2f %.2f\t%g\t%t\n",
			m.Tag,
			m.DiffuseColor.X, m.DiffuseColor.Y, m.DiffuseColor.Z,
			m.SpecularColor.X, m.SpecularColor.Y, m.SpecularColor.Z,
			m.Shininess,
			reg.Textured(m.Tag),
		)
	}
	return tw.Flush()
}

func cmdTextures(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: scenetool textures <dir> [dir...]")
	}
	return checkTextures(os.Stdout, assets.NewManager(args...))
}

// checkTextures decodes every attic texture the way the viewer would and
// reports per-file results. Repeated tags are reported, not failed.
func checkTextures(w io.Writer, m *assets.Manager) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tFILE\tSIZE\tCHANNELS\tSTATUS")

	seen := make(map[string]bool)
	failed := 0
	for _, src := range scene.AtticTextures() {
		if seen[src.Tag] {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\tskipped (tag already loaded)\n", src.Tag, src.Path)
			continue
		}
		data, err := m.Load(src.Path)
		if err == nil {
			var img *texture.Image
			img, err = texture.Decode(data)
			if err == nil {
				seen[src.Tag] = true
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\tok\n", src.Tag, src.Path, img.Width, img.Height, img.Channels)
				continue
			}
		}
		failed++
		fmt.Fprintf(tw, "%s\t%s\t-\t-\t%v\n", src.Tag, src.Path, err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d texture(s) failed", failed)
	}
	return nil
}

func cmdTrace(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	pass := fs.String("pass", "color", "Pass to run: color or depth")
	fs.Parse(args)

	var p shader.Pass
	switch *pass {
	case "color":
		p = shader.PassColor
	case "depth":
		p = shader.PassDepth
	default:
		return fmt.Errorf("unknown pass %q", *pass)
	}
	return writeTrace(os.Stdout, p)
}

// countingDrawer tallies draw calls per mesh kind.
type countingDrawer map[mesh.Kind]int

func (c countingDrawer) Draw(k mesh.Kind) { c[k]++ }

// tagSlots assigns slots the way the texture registry would if every
// attic texture loaded.
type tagSlots map[string]int

func (t tagSlots) FindSlot(tag string) int {
	if s, ok := t[tag]; ok {
		return s
	}
	return -1
}

func atticSlots() tagSlots {
	slots := make(tagSlots)
	for _, src := range scene.AtticTextures() {
		if _, ok := slots[src.Tag]; !ok {
			slots[src.Tag] = len(slots)
		}
	}
	return slots
}

func writeTrace(w io.Writer, pass shader.Pass) error {
	rec := shadertest.New()
	draws := make(countingDrawer)
	mats := material.NewRegistry(logger.Named("material"))
	mats.DefineAll(material.Attic())

	st := scene.Run(pass, scene.Attic(), scene.Deps{
		Uniforms:  rec,
		Materials: mats,
		Textures:  atticSlots(),
		Meshes:    draws,
		Log:       logger.Named("scene"),
	})

	fmt.Fprintf(w, "pass:            %s\n", pass)
	fmt.Fprintf(w, "draws:           %d\n", st.Draws)
	fmt.Fprintf(w, "material misses: %d\n", st.MaterialMisses)
	fmt.Fprintf(w, "texture misses:  %d\n", st.TextureMisses)
	fmt.Fprintf(w, "uniform writes:  %d\n", len(rec.Calls))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MESH\tDRAWS")
	for _, k := range mesh.Kinds {
		fmt.Fprintf(tw, "%s\t%d\n", k, draws[k])
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "UNIFORM\tWRITES")
	names := rec.Names()
	sort.SliceStable(names, func(i, j int) bool { return rec.Count(names[i]) > rec.Count(names[j]) })
	for _, n := range names {
		fmt.Fprintf(tw, "%s\t%d\n", n, rec.Count(n))
	}
	return tw.Flush()
}
