package autogen

// SourceName identifies this strategy in config and logs.
const SourceName = "autogen"

// Doc file extensions picked up by the scan.
var docExtensions = []string{".md", ".mdx"}

// Category metadata files, first match wins.
var categoryFiles = []string{"_category_.json", "_category_.yml", "_category_.yaml"}

// frontMatter holds the keys of a doc's front matter that affect the sidebar.
type frontMatter struct {
	ID              string   `yaml:"id"`
	SidebarPosition *float64 `yaml:"sidebar_position"`
}

// categoryMeta is the content of a _category_ file.
type categoryMeta struct {
	Label     string   `yaml:"label"`
	Position  *float64 `yaml:"position"`
	Collapsed *bool    `yaml:"collapsed"`
}
