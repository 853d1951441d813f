// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dacolabs/synth/internal/jschema"
	"github.com/dacolabs/synth/internal/prompts"
	"github.com/dacolabs/synth/internal/session"
	"github.com/dacolabs/synth/internal/synth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type describeOptions struct {
	schema         string
	def            string
	nonInteractive bool
}

var (
	shapeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24")).Bold(true)
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
	treeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5c5c5c"))
)

func newDescribeCmd() *cobra.Command {
	opts := &describeOptions{}

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the shape compiled from a JSON Schema",
		Long: `Compile a JSON Schema and print the resulting shape as a tree of fields
and kinds. If no definition is given and the schema has $defs, an
interactive selection prompt is shown.`,
		Example: `  # Describe the root schema
  synth describe --schema order.yaml

  # Describe a definition
  synth describe -s order.yaml --def customer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDescribe(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "Path to a JSON Schema file")
	cmd.Flags().StringVarP(&opts.def, "def", "d", "", "Definition under $defs to describe")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runDescribe(cmd *cobra.Command, ctx *session.Context, opts *describeOptions) error {
	doc, err := loadDocument(opts.schema)
	if err != nil {
		return err
	}

	def := opts.def
	if def == "" && !opts.nonInteractive && prompts.Interactive() {
		if def, err = selectDefinition(doc); err != nil {
			return err
		}
	}

	shape, err := jschema.Compile(doc, def)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("describing shape", zap.String("shape", shape.Name), zap.Int("fields", len(shape.Fields)))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), shapeTree(shape))
	return err
}

// shapeTree renders a shape and its nested shapes. A shape that already
// appears on the path from the root is printed once and marked recursive.
func shapeTree(shape *synth.Shape) *tree.Tree {
	t := tree.Root(shapeStyle.Render(shape.Name)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeStyle)
	addFields(t, shape, map[*synth.Shape]bool{shape: true})
	return t
}

func addFields(t *tree.Tree, shape *synth.Shape, path map[*synth.Shape]bool) {
	for i := range shape.Fields {
		f := &shape.Fields[i]
		label := f.Name + " " + kindStyle.Render(fieldKind(f))

		nestedShape := f.Shape
		if f.Kind == synth.Array && f.Items != nil {
			nestedShape = f.Items.Shape
		}
		if nestedShape == nil || (f.Kind != synth.Object && f.Kind != synth.Array) {
			t.Child(label)
			continue
		}
		if path[nestedShape] {
			t.Child(label + kindStyle.Render(" (recursive)"))
			continue
		}

		child := tree.Root(label)
		path[nestedShape] = true
		addFields(child, nestedShape, path)
		delete(path, nestedShape)
		t.Child(child)
	}
}

func fieldKind(f *synth.Field) string {
	switch f.Kind {
	case synth.Enum:
		values := make([]string, len(f.Values))
		for i, v := range f.Values {
			values[i] = fmt.Sprint(v)
		}
		return fmt.Sprintf("enum [%s]", strings.Join(values, ", "))
	case synth.Object:
		if f.Shape == nil {
			return "object"
		}
		return "object " + f.Shape.Name
	case synth.Array:
		if f.Items == nil {
			return "array"
		}
		return "array of " + fieldKind(f.Items)
	default:
		return f.Kind.String()
	}
}
