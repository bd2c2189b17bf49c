// Command mdcorec is the CLI collaborator over the mdcore library: parse,
// render, and mdx subcommands reading a source file and writing the
// requested representation to stdout (or -o/--output).
package main

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/brandonbloom/mdcore"
)

var (
	outputFile string
	flagGFM    bool
	flagMDX    bool
	flagSanitize bool
	flagAllowDangerousHTML bool
)

func main() {
	root := &cobra.Command{
		Use:   "mdcorec",
		Short: "Parse, render, and compile Markdown/MDX documents",
	}
	root.PersistentFlags().StringVarP(&outputFile, "output", "o", "/dev/stdout", "output file to write")
	root.PersistentFlags().BoolVar(&flagGFM, "gfm", false, "enable GitHub-Flavored Markdown extensions")
	root.PersistentFlags().BoolVar(&flagMDX, "mdx", false, "enable MDX (JSX+ESM) parsing")
	root.PersistentFlags().BoolVar(&flagSanitize, "sanitize", true, "sanitize rendered HTML")
	root.PersistentFlags().BoolVar(&flagAllowDangerousHTML, "allow-dangerous-html", false, "pass through raw HTML/URLs unsanitized")

	root.AddCommand(parseCmd(), renderCmd(), mdxCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() mdcore.Options {
	opts := mdcore.DefaultOptions()
	opts.GFM = flagGFM
	opts.MDX = flagMDX
	opts.Sanitize = flagSanitize
	opts.AllowDangerousHTML = flagAllowDangerousHTML
	return opts
}

func readSource(args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected exactly one <file> argument")
	}
	if args[0] == "-" {
		return os.ReadFile("/dev/stdin")
	}
	return os.ReadFile(args[0])
}

func writeOutput(data []byte) error {
	return os.WriteFile(outputFile, append(data, '\n'), 0644)
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a document and print its syntax tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			res, err := mdcore.Parse(src, options())
			if err != nil {
				return err
			}
			raw, err := mdcore.SerializeTree(res.Tree)
			if err != nil {
				return err
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				return err
			}
			return writeOutput(pretty.Bytes())
		},
	}
}

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document to sanitized HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			res, err := mdcore.RenderHTML(src, options())
			if err != nil {
				return err
			}
			for _, d := range res.Diagnostics {
				fmt.Fprintln(os.Stderr, d.String())
			}
			return writeOutput([]byte(res.HTML))
		},
	}
}

func mdxCmd() *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "mdx <file>",
		Short: "Compile a document to an MDX ES module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			opts := options()
			opts.ProviderImportSource = provider
			res, err := mdcore.CompileMDX(src, opts)
			if err != nil {
				return err
			}
			for _, d := range res.Diagnostics {
				fmt.Fprintln(os.Stderr, d.String())
			}
			return writeOutput([]byte(res.ESMSource))
		},
	}
	cmd.Flags().StringVar(&provider, "provider-import-source", "", "MDX component provider import source, e.g. @mdx-js/react")
	return cmd
}
