package bridge

import "strconv"

// Generator actions. Preview must never receive a destination; it is
// the action's contract that it does not touch disk.
const (
	ActionGenerate = "generate"
	ActionPreview  = "preview"
)

// BuildArgs translates a request into the generator's argument vector.
// Stack flags are emitted in a fixed order so invocations are
// reproducible and testable; absent fields are skipped, never defaulted.
func BuildArgs(action string, seed uint64, outputPath string, stack *StackConstraints, enrich *EnrichmentConfig) []string {
	args := []string{action, strconv.FormatUint(seed, 10)}

	if action == ActionGenerate {
		if outputPath != "" {
			args = append(args, "--output", outputPath)
		}
		args = append(args, "--json")
	}

	if stack != nil {
		pairs := []struct {
			flag  string
			value string
		}{
			{"--archetype", stack.Archetype},
			{"--language", stack.Language},
			{"--framework", stack.Framework},
			{"--database", stack.Database},
			{"--packaging", stack.Packaging},
			{"--cicd", stack.CICD},
		}
		for _, p := range pairs {
			if p.value != "" {
				args = append(args, p.flag, p.value)
			}
		}
	}

	if enrich != nil && enrich.Enabled {
		depth := enrich.Depth
		if depth == "" {
			depth = defaultEnrichmentDepth
		}
		args = append(args, "--enrich", "--enrich-depth", depth)

		// Only explicit false emits a negation flag; nil defers to the
		// depth's default inside the generator. Sub-flags cannot be
		// affirmatively forced on.
		negations := []struct {
			flag  string
			value *bool
		}{
			{"--no-enrich-cicd", enrich.CICD},
			{"--no-enrich-release", enrich.Release},
			{"--no-enrich-fill-logic", enrich.FillLogic},
			{"--no-enrich-tests", enrich.Tests},
			{"--no-enrich-docker-prod", enrich.DockerProd},
			{"--no-enrich-linting", enrich.Linting},
			{"--no-enrich-env-files", enrich.EnvFiles},
			{"--no-enrich-docs", enrich.Docs},
		}
		for _, n := range negations {
			if n.value != nil && !*n.value {
				args = append(args, n.flag)
			}
		}
	}

	return args
}
