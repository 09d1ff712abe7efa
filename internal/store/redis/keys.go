package redis

const (
	// KeySnapshot holds the full ordered sidebars JSON
	KeySnapshot = "docnav:snapshot"
	// KeyMeta is a hash describing the snapshot (source, checksum, saved_at)
	KeyMeta = "docnav:snapshot:meta"
	// KeyNames is the list of sidebar names in authoring order
	KeyNames = "docnav:sidebars"
	// KeyPrefixSidebar is the prefix for per-sidebar entry lists
	KeyPrefixSidebar = "docnav:sidebar:"
)

// SidebarKey returns the Redis key for one sidebar's entries
func SidebarKey(name string) string {
	return KeyPrefixSidebar + name
}
