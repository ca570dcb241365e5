// objtool is a CLI utility for inspecting and converting Wavefront OBJ files.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "materials", "mtl":
		cmdMaterials(args)
	case "stl":
		cmdSTL(args)
	case "simplify":
		cmdSimplify(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                          Show geometry counts and bounds
  materials <file.obj>                     List materials and textures
  stl <file.obj> <out.stl>                 Export binary STL
  simplify [-f factor] <file.obj> <out.stl> Decimate and export binary STL

Options:
  -v    Debug logging (all commands)

Examples:
  objtool info bunny.obj
  objtool materials sponza.obj
  objtool simplify -f 0.25 bunny.obj bunny_small.stl`)
}

// commandFlags returns a flag set with the options every command accepts.
func commandFlags(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	verbose := fs.Bool("v", false, "Debug logging")
	return fs, verbose
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Sync()
	os.Exit(1)
}

// load parses path with a texture decoder attached. Textures are only
// decoded when withTextures is set.
func load(path string, verbose, withTextures bool) (*model.Mesh, *formats.OBJ) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fail(err)
	}

	// Without textures every map resolves to a 1x1 white placeholder.
	var decoder formats.ImageDecoder = formats.ImageDecoderFunc(func(path string) (*formats.TextureMap, error) {
		return &formats.TextureMap{Path: path, Width: 1, Height: 1, Pixels: []byte{255, 255, 255, 255}}, nil
	})
	if withTextures {
		decoder = &texture.Decoder{}
	}
	lib := formats.NewMaterialLibrary(decoder, formats.WithLogger(logger.Named("formats")))

	mesh, obj, err := model.LoadFile(path, lib, model.BuildOptions{})
	if err != nil {
		fail(err)
	}
	return mesh, obj
}

func cmdInfo(args []string) {
	fs, verbose := commandFlags("info")
	fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}

	mesh, obj := load(fs.Arg(0), *verbose, false)

	fmt.Printf("File:       %s\n", fs.Arg(0))
	fmt.Printf("Positions:  %d\n", len(obj.Positions))
	fmt.Printf("Texcoords:  %d\n", len(obj.Texcoords))
	fmt.Printf("Normals:    %d\n", len(obj.Normals))
	fmt.Printf("Faces:      %d (triangulated)\n", len(obj.Faces))
	fmt.Printf("Materials:  %d\n", len(obj.Library.Materials()))
	fmt.Println()
	fmt.Printf("Vertices:   %d unique\n", mesh.VertexCount())
	fmt.Printf("Triangles:  %d\n", len(mesh.Triangles))
	fmt.Printf("Groups:     %d\n", len(mesh.Groups))
	if mesh.Bounds.Empty() {
		fmt.Println("Bounds:     (empty)")
		return
	}
	b := mesh.Bounds
	size := b.Size()
	scale, translate := mesh.NormalizeTransform()
	fmt.Printf("Bounds:     (%.4g, %.4g, %.4g) - (%.4g, %.4g, %.4g)\n", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Printf("Size:       %.4g x %.4g x %.4g\n", size.X, size.Y, size.Z)
	fmt.Printf("Normalize:  scale %.4g, translate (%.4g, %.4g, %.4g)\n", scale, translate.X, translate.Y, translate.Z)
}

func cmdMaterials(args []string) {
	fs, verbose := commandFlags("materials")
	fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool materials <file.obj>")
		os.Exit(1)
	}

	mesh, obj := load(fs.Arg(0), *verbose, true)

	// Triangles per material
	usage := make(map[string]int)
	for _, g := range mesh.Groups {
		usage[g.Material] += g.TriangleCount
	}

	materials := obj.Library.Materials()
	sort.SliceStable(materials, func(i, j int) bool {
		return usage[materials[i].Name] > usage[materials[j].Name]
	})

	for _, m := range materials {
		fmt.Printf("%s (%d triangles)\n", m.Name, usage[m.Name])
		fmt.Printf("  Kd %.3g %.3g %.3g  Ks %.3g %.3g %.3g  Ns %.4g  opacity %.3g  illum %d\n",
			m.Diffuse.X, m.Diffuse.Y, m.Diffuse.Z,
			m.Specular.X, m.Specular.Y, m.Specular.Z,
			m.Shininess, 1-m.Transparency, m.Illum)
		for _, tm := range []struct {
			name string
			tex  *formats.TextureMap
		}{
			{"map_Ka", m.AmbientMap},
			{"map_Kd", m.DiffuseMap},
			{"map_Ks", m.SpecularMap},
			{"bump", m.BumpMap},
		} {
			if tm.tex != nil {
				fmt.Printf("  %-7s %s (%dx%d)\n", tm.name, tm.tex.Path, tm.tex.Width, tm.tex.Height)
			}
		}
	}
	if n := usage[""]; n > 0 {
		fmt.Printf("(none) (%d triangles)\n", n)
	}

	hits, misses := obj.Library.CacheStats()
	fmt.Println()
	fmt.Printf("Textures: %d decoded, %d cache hits, %d misses\n", obj.Library.TextureCount(), hits, misses)
}

func cmdSTL(args []string) {
	fs, verbose := commandFlags("stl")
	fs.Parse(args)
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool stl <file.obj> <out.stl>")
		os.Exit(1)
	}
	export(fs.Arg(0), fs.Arg(1), 1, *verbose)
}

func cmdSimplify(args []string) {
	fs, verbose := commandFlags("simplify")
	factor := fs.Float64("f", 0.5, "Target fraction of triangles to keep")
	fs.Parse(args)
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool simplify [-f factor] <file.obj> <out.stl>")
		os.Exit(1)
	}
	export(fs.Arg(0), fs.Arg(1), *factor, *verbose)
}

func export(in, out string, factor float64, verbose bool) {
	mesh, _ := load(in, verbose, false)
	n, err := mesh.WriteSTL(out, factor)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s: %d triangles (from %d)\n", out, n, len(mesh.Triangles))
}
