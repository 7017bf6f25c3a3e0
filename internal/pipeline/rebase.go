package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RebaseLinks rewrites relative img[src] and a[href] values written for a
// document in srcDir so they resolve from dstDir. URLs, anchors, absolute
// paths, and targets outside srcDir are left as they are. When both
// directories are the same the HTML is returned untouched.
func RebaseLinks(htmlContent, srcDir, dstDir string) (string, error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return "", err
	}
	absDst, err := filepath.Abs(dstDir)
	if err != nil {
		return "", err
	}
	if absSrc == absDst {
		return htmlContent, nil
	}

	root, fragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	rebaseNode(root, absSrc, absDst)
	return renderHTML(root, fragment)
}

// parseHTML parses a full page or a body fragment. Fragment nodes are
// collected under a synthetic document node.
func parseHTML(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// renderHTML serializes root, skipping the synthetic node for fragments.
func renderHTML(root *html.Node, fragment bool) (string, error) {
	var b strings.Builder
	if !fragment {
		if err := html.Render(&b, root); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func rebaseNode(n *html.Node, srcDir, dstDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rebaseAttr(n, "src", srcDir, dstDir)
		case atom.A:
			rebaseAttr(n, "href", srcDir, dstDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebaseNode(c, srcDir, dstDir)
	}
}

func rebaseAttr(n *html.Node, key, srcDir, dstDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		if rebased, ok := rebaseRef(attr.Val, srcDir, dstDir); ok {
			n.Attr[i].Val = rebased
		}
	}
}

// rebaseRef returns ref relative to dstDir, keeping any query and
// fragment. ok is false when ref must not be touched.
func rebaseRef(ref, srcDir, dstDir string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	if path.IsAbs(u.Path) || strings.HasPrefix(ref, "//") {
		return "", false
	}

	target := filepath.Join(srcDir, filepath.FromSlash(u.Path))
	if !within(target, srcDir) {
		return "", false
	}
	rel, err := filepath.Rel(dstDir, target)
	if err != nil {
		return "", false
	}
	u.Path = filepath.ToSlash(rel)
	return u.String(), true
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	dir = filepath.Clean(dir) + string(filepath.Separator)
	return strings.HasPrefix(filepath.Clean(p)+string(filepath.Separator), dir)
}
