package navigation

import "strings"

// Item is a link rendered in the site header or footer. Key identifies the
// item when marking the active section.
type Item struct {
	Key   string
	Label string
	Path  string
}

// Primary returns the fixed header links of the site.
func Primary() []Item {
	return []Item{
		{Key: "home", Label: "Forside", Path: "/"},
		{Key: "artists", Label: "Artister", Path: "/artists"},
		{Key: "venues", Label: "Scener", Path: "/venues"},
	}
}

// Active returns the key of the item whose path is the longest prefix of
// current, matching whole path segments only. "/" matches only itself.
func Active(items []Item, current string) string {
	active := ""
	longest := -1
	for _, item := range items {
		if !matches(item.Path, current) {
			continue
		}
		if len(item.Path) > longest {
			active = item.Key
			longest = len(item.Path)
		}
	}
	return active
}

func matches(path, current string) bool {
	if path == "/" {
		return current == "/"
	}
	return current == path || strings.HasPrefix(current, path+"/")
}
