package config

// Spawnfile represents the structure of the spawn.yaml configuration file.
type Spawnfile struct {
	Root        string    `yaml:"root"`
	EntryPoints []string  `yaml:"entryPoints"`
	Outdir      string    `yaml:"outdir"`
	Outfile     string    `yaml:"outfile"`
	Format      string    `yaml:"format"`
	Platform    string    `yaml:"platform"`
	Minify      bool      `yaml:"minify"`
	Sourcemap   bool      `yaml:"sourcemap"`
	Worker      WorkerDTO `yaml:"worker"`
	Watch       WatchDTO  `yaml:"watch"`
}

// WorkerDTO represents the worker section.
type WorkerDTO struct {
	Format  string       `yaml:"format"`
	Options SubBundleDTO `yaml:"options"`
}

// SubBundleDTO holds the options passed through to nested worker builds.
type SubBundleDTO struct {
	Platform   string            `yaml:"platform"`
	Target     string            `yaml:"target"`
	Minify     bool              `yaml:"minify"`
	Splitting  bool              `yaml:"splitting"`
	Define     map[string]string `yaml:"define"`
	External   []string          `yaml:"external"`
	Alias      map[string]string `yaml:"alias"`
	Loader     map[string]string `yaml:"loader"`
	Conditions []string          `yaml:"conditions"`
	Tsconfig   string            `yaml:"tsconfig"`
	Output     OutputDTO         `yaml:"output"`
}

// OutputDTO holds the output options of nested worker builds.
type OutputDTO struct {
	Format     string `yaml:"format"`
	EntryNames string `yaml:"entryNames"`
	ChunkNames string `yaml:"chunkNames"`
	AssetNames string `yaml:"assetNames"`
	Banner     string `yaml:"banner"`
	Footer     string `yaml:"footer"`
	Sourcemap  bool   `yaml:"sourcemap"`
}

// WatchDTO represents the watch section.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}
