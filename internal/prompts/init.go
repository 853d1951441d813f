// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(textPrefix, maxDepth, format *string, formats []string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Text prefix").
				Description("Literal prefix of generated text values").
				Placeholder("sample-").
				Validate(requiredValidator("text prefix")).
				Value(textPrefix),
			huh.NewInput().
				Title("Maximum nesting depth").
				Placeholder("8").
				Validate(nonNegativeIntValidator("depth")).
				Value(maxDepth),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default output format").
				Options(stringOptions(formats)...).
				Value(format),
		),
	).WithTheme(Theme()).Run()
}
