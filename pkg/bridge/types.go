package bridge

// GenerationMode selects how a project is produced. Only procedural
// generation is supported; manifest and hybrid modes belong to the
// template pipeline, which is out of scope for this backend.
type GenerationMode string

const (
	ModeProcedural GenerationMode = "procedural"
)

// StackConstraints pins individual technology choices for a seed.
// Empty fields are omitted from the generator invocation entirely; the
// generator applies its own seed-derived defaults for anything unset.
type StackConstraints struct {
	Archetype string `json:"archetype,omitempty" yaml:"archetype"`
	Language  string `json:"language,omitempty" yaml:"language"`
	Framework string `json:"framework,omitempty" yaml:"framework"`
	Database  string `json:"database,omitempty" yaml:"database"`
	Packaging string `json:"packaging,omitempty" yaml:"packaging"`
	CICD      string `json:"cicd,omitempty" yaml:"cicd"`
}

// EnrichmentConfig controls the generator's enrichment pass. The eight
// sub-flags are tri-state: nil defers to the depth's default inside the
// generator, and only an explicit false emits a negation flag. There is
// deliberately no way to force a sub-flag on; that is the generator's
// documented contract.
type EnrichmentConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Depth      string `json:"depth,omitempty" yaml:"depth"`
	CICD       *bool  `json:"cicd,omitempty" yaml:"cicd"`
	Release    *bool  `json:"release,omitempty" yaml:"release"`
	FillLogic  *bool  `json:"fill_logic,omitempty" yaml:"fill_logic"`
	Tests      *bool  `json:"tests,omitempty" yaml:"tests"`
	DockerProd *bool  `json:"docker_prod,omitempty" yaml:"docker_prod"`
	Linting    *bool  `json:"linting,omitempty" yaml:"linting"`
	EnvFiles   *bool  `json:"env_files,omitempty" yaml:"env_files"`
	Docs       *bool  `json:"docs,omitempty" yaml:"docs"`
}

const defaultEnrichmentDepth = "standard"

// GenerationRequest is the request shape exposed to the UI layer.
type GenerationRequest struct {
	Mode       GenerationMode    `json:"mode"`
	Seed       *uint64           `json:"seed,omitempty"`
	Stack      *StackConstraints `json:"stack,omitempty"`
	OutputPath string            `json:"output_path"`
	Enrichment *EnrichmentConfig `json:"enrichment,omitempty"`
}

// ProcessOutcome captures one completed generator invocation. ExitCode
// is nil when the process terminated without an exit status (signal).
type ProcessOutcome struct {
	Success  bool   `json:"success"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode *int   `json:"exit_code,omitempty"`
}

// GenerationResult is returned to the caller for generate requests.
// Success=false here is a normal outcome (the generator reported a
// logical failure), not an orchestration error.
type GenerationResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	FilesGenerated []string `json:"files_generated"`
	OutputPath     string   `json:"output_path"`
	DurationMs     int64    `json:"duration_ms"`
}

// PreviewResult carries an in-memory manifest produced without touching
// disk: file path -> file content, plus the resolved stack.
type PreviewResult struct {
	Files map[string]string      `json:"files"`
	Stack map[string]interface{} `json:"stack,omitempty"`
	Seed  uint64                 `json:"seed"`
}
