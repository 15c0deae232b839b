package main

import (
	"fmt"

	"github.com/seedforge/seedforge/pkg/bridge"
)

// flagValue returns the value following args[i] and the index to resume
// the parse loop at.
func flagValue(args []string, i int) (string, int, error) {
	if i+1 >= len(args) {
		return "", i, fmt.Errorf("%s requires a value", args[i])
	}
	return args[i+1], i + 1, nil
}

// parseStackFlag consumes one stack constraint flag when args[i] is one.
func parseStackFlag(stack *bridge.StackConstraints, args []string, i int) (bool, int, error) {
	var target *string
	switch args[i] {
	case "--archetype":
		target = &stack.Archetype
	case "--language":
		target = &stack.Language
	case "--framework":
		target = &stack.Framework
	case "--database":
		target = &stack.Database
	case "--packaging":
		target = &stack.Packaging
	case "--cicd":
		target = &stack.CICD
	default:
		return false, i, nil
	}

	value, next, err := flagValue(args, i)
	if err != nil {
		return false, i, err
	}
	*target = value
	return true, next, nil
}

// resolveStack merges flag-level constraints over a stack file. Flags
// win on conflict. Returns nil when nothing is constrained so the
// generator falls back to seed-derived defaults.
func resolveStack(flags bridge.StackConstraints, stackFile string) (*bridge.StackConstraints, error) {
	merged := flags
	if stackFile != "" {
		fromFile, err := bridge.LoadStackFile(stackFile)
		if err != nil {
			return nil, err
		}
		applyIfUnset(&merged.Archetype, fromFile.Archetype)
		applyIfUnset(&merged.Language, fromFile.Language)
		applyIfUnset(&merged.Framework, fromFile.Framework)
		applyIfUnset(&merged.Database, fromFile.Database)
		applyIfUnset(&merged.Packaging, fromFile.Packaging)
		applyIfUnset(&merged.CICD, fromFile.CICD)
	}

	if merged == (bridge.StackConstraints{}) {
		return nil, nil
	}
	return &merged, nil
}

func applyIfUnset(target *string, value string) {
	if *target == "" {
		*target = value
	}
}
