// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// RunGenerateForm asks for whatever the generate command is missing.
// The definition select is shown only when askDef is set and the schema
// has definitions; the format select only when askFormat is set.
func RunGenerateForm(def, format *string, askDef, askFormat bool, defs, formats []string) error {
	if (!askDef || len(defs) == 0) && !askFormat {
		return nil
	}

	defOptions := append([]huh.Option[string]{huh.NewOption("(root schema)", "")}, stringOptions(defs)...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Shape to generate").
				Options(defOptions...).
				Filtering(true).
				Height(10).
				Value(def),
		).WithHideFunc(func() bool { return !askDef || len(defs) == 0 }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(stringOptions(formats)...).
				Value(format),
		).WithHideFunc(func() bool { return !askFormat }),
	).WithTheme(Theme()).Run()
}

// RunDefinitionSelect prompts the user to pick a definition to describe.
func RunDefinitionSelect(value *string, defs []string) error {
	defOptions := append([]huh.Option[string]{huh.NewOption("(root schema)", "")}, stringOptions(defs)...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select shape to describe").
				Options(defOptions...).
				Filtering(true).
				Value(value).
				Height(10),
		),
	).WithTheme(Theme()).Run()
}
