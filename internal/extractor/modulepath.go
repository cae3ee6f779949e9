package extractor

import (
	"path/filepath"
	"strings"
)

// DeriveModulePath computes the project name and dotted module path of a file.
//
// With a project name, everything after its first occurrence in the path is the
// project-relative path. Without one, or when the name does not occur, the parent
// directory is taken as the project and the last two path segments as the
// relative path.
func DeriveModulePath(path, projectName string) (string, []string) {
	p := filepath.ToSlash(path)

	var rel string
	if projectName != "" {
		if _, after, ok := strings.Cut(p, projectName); ok {
			rel = strings.TrimPrefix(after, "/")
		}
	}
	if rel == "" {
		segs := strings.Split(p, "/")
		if len(segs) >= 2 {
			projectName = segs[len(segs)-2]
			rel = segs[len(segs)-2] + "/" + segs[len(segs)-1]
		} else {
			rel = p
		}
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	var modulePath []string
	for _, seg := range strings.Split(strings.ReplaceAll(rel, "/", "."), ".") {
		if seg != "" {
			modulePath = append(modulePath, seg)
		}
	}
	return projectName, modulePath
}

// RelativeAnchor approximates the module a relative import ("from . import x")
// refers to by indexing the file's own path: level 1 is the containing directory,
// level 2 its parent, and so on. It returns "" when the path is too shallow.
//
// The anchor is positional, not scope based, so deep relative imports may name
// the wrong package.
func RelativeAnchor(path string, level int) string {
	segs := strings.Split(filepath.ToSlash(path), "/")
	idx := len(segs) - level - 1
	if level < 1 || idx < 0 {
		return ""
	}
	return segs[idx]
}
