package domain

// MetadataStore loads and persists a repository's .omd documents.
type MetadataStore interface {
	// Load reads .omd/repository.yaml. Returns ErrMissingMetadata when the
	// file does not exist.
	Load(repoPath string) (RepositoryMetadata, error)
	// LoadOverrides reads .omd/overrides.yaml. A missing file is (nil, nil).
	LoadOverrides(repoPath string) (*OverrideDocument, error)
	// Save writes metadata back; used only for detector-synthesized config.
	Save(repoPath string, meta RepositoryMetadata) error
}

// RepositoryDetector infers metadata from a repository's file tree.
type RepositoryDetector interface {
	Detect(repoPath string) (RepositoryMetadata, error)
}

// GitInfo supplies repository hints derived from version-control state.
type GitInfo interface {
	// RemoteName returns the repository name parsed from the origin remote.
	RemoteName(repoPath string) (string, error)
	// PlatformHint maps the origin remote host to a CI platform, or "".
	PlatformHint(repoPath string) (string, error)
}

// FragmentKind selects the fragment namespace for lookup by convention.
type FragmentKind string

const (
	FragmentLanguage FragmentKind = "language"
	FragmentPlatform FragmentKind = "platform"
)

// RenderContext is the explicit repository context fragments render
// against. It is passed by parameter into every lookup so a batch run can
// never leak one repository's context into the next.
type RenderContext struct {
	Language  string
	Languages []string
	Platform  string
	Types     []string
	RepoName  string
}

// Fragment is a named snippet of structured configuration contributed by a
// language or platform template.
type Fragment struct {
	Name string
	Data map[string]any
}

// FragmentLoader resolves fragments by convention. Absence is not an
// error: a nil fragment with an empty warning means "no enhancement
// available". A non-empty warning reports a fragment whose rendered output
// failed to parse; resolution treats it as absent.
type FragmentLoader interface {
	Load(kind FragmentKind, name string, ctx RenderContext) (frag *Fragment, warning string)
}

// DocumentValidator validates configuration documents against the loaded
// schema set.
type DocumentValidator interface {
	Index() *SchemaIndex
	HasSchema(name string) bool
	// ValidateFile checks one YAML document against a named schema.
	ValidateFile(path string, schema string) (valid bool, errors []string)
	// Warnings reports schemas that were skipped at load time.
	Warnings() []string
}

// OutputGenerator renders a resolved configuration into workspace, editor,
// ignore-file and instruction outputs. It returns the relative paths of
// the files it created or changed, plus non-fatal warnings for fragments
// whose rendered output could not be used.
type OutputGenerator interface {
	Generate(repoPath string, resolved ResolvedConfiguration, overrides *OverrideDocument) (written []string, warnings []string, err error)
}
