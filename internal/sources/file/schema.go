package file

import "gopkg.in/yaml.v3"

// SourceName identifies this strategy in config and logs.
const SourceName = "file"

// Entry types understood in the long object form.
const (
	typeCategory = "category"
	typeDoc      = "doc"
)

// entrySchema is the object form of an entry. Keys the generator supports but
// that carry no meaning here (className, customProps, link...) are ignored.
type entrySchema struct {
	Type      string    `yaml:"type"`
	ID        string    `yaml:"id"`
	Label     string    `yaml:"label"`
	Items     yaml.Node `yaml:"items"`
	Collapsed *bool     `yaml:"collapsed"`
}
