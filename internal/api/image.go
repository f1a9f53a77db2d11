package api

import "strings"

// PlaceholderImage is served for products without an image.
const PlaceholderImage = "https://via.placeholder.com/400x500/3B82F6/FFFFFF?text=Bosko+Product"

// ResolveImageURL turns a stored image reference into an absolute URL.
// Absolute URLs pass through, rooted paths are joined to assetBase, and bare
// file names are looked up under /uploads/.
func ResolveImageURL(assetBase, ref string) string {
	ref = strings.TrimSpace(ref)
	base := strings.TrimRight(assetBase, "/")
	switch {
	case ref == "":
		return PlaceholderImage
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return base + ref
	default:
		return base + "/uploads/" + ref
	}
}
